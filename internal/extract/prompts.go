package extract

import (
	"strings"

	"github.com/beamdocs/docharvest/constants"
)

// Prompt templates are fixed and pre-authored, keyed by dataset. Each embeds
// the target JSON schema inline so the capability is steered toward exact key
// names and types.

const systemPrompt = "You are a precise data extraction assistant. Return ONLY a single JSON object, no prose, no Markdown."

const invoicePrompt = `You are extracting information from an Invoice Document. Locate the following:

1. Total Gross: the total gross amount, often near the bottom of the invoice, labeled "Total Gross", "Gross Amount" or "Gesamtsumme".
2. Total Net: the total net amount, usually listed alongside the gross total, labeled "Total Net" or "Net Amount".
3. Business Name: the name of the business issuing the invoice, usually the prominent name at the top of the document.
4. Items: every line item, typically in a table. For each item extract its name and its price.

Prices must be plain numbers with two decimal places. For documents with layout variations, use keyword searching and pattern recognition to locate the required fields.

Output the extracted data in exactly this JSON format:
{
  "total_gross": <float>,
  "total_net": <float>,
  "business_name": "<string>",
  "items": [
    {
      "name": "<string>",
      "price": <float>
    }
  ]
}`

const orderPrompt = `You are extracting information from an Order Document. Locate the following:

1. Buyer Information: buyer company name (header or contact section), buyer person name (near the company name), buyer email address.
2. Order Information: order number (labeled "Order No." or similar) and order date, formatted DD.MM.YYYY.
3. Delivery Information: delivery street, city and postal code from the delivery section.
4. Product Information: for each product listed, its position (starting from 1), its article code and the ordered quantity.

For documents with layout variations, use keyword searching and pattern recognition to locate the required fields.

Output the extracted data in exactly this JSON format:
{
  "buyer": {
    "buyer_company_name": "<string>",
    "buyer_person_name": "<string>",
    "buyer_email_address": "<string>"
  },
  "order": {
    "order_number": "<string>",
    "order_date": "<string>",
    "delivery": {
      "delivery_address_street": "<string>",
      "delivery_address_city": "<string>",
      "delivery_address_postal_code": "<string>"
    }
  },
  "products": [
    {
      "product_position": <integer>,
      "product_article_code": "<string>",
      "product_quantity": <integer>
    }
  ]
}`

const maxPromptText = 12000

// BuildPrompt selects the dataset template and packages the document text.
func BuildPrompt(dataset constants.Dataset, text string) (system, user string) {
	template := invoicePrompt
	if dataset == constants.DatasetOrder {
		template = orderPrompt
	}

	var b strings.Builder
	b.WriteString(template)
	b.WriteString("\n\nExtracted Text:\n")
	if len(text) > maxPromptText {
		b.WriteString(text[:maxPromptText])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return systemPrompt, b.String()
}
