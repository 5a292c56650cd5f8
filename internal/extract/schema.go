package extract

import "github.com/beamdocs/docharvest/constants"

// BuildInvoiceJSONSchema returns the canonical invoice shape as a JSON-Schema
// (draft 2020-12 subset) generic map. Reconciled payloads are validated
// against it locally before a record is emitted: only these keys may survive,
// and amount fields must be true numbers (null marks an unparseable amount).
func BuildInvoiceJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"total_gross":   amountProp(),
			"total_net":     amountProp(),
			"business_name": map[string]any{"type": "string"},
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"name":  map[string]any{"type": "string"},
						"price": amountProp(),
					},
				},
			},
		},
	}
}

// BuildOrderJSONSchema returns the canonical order shape.
func BuildOrderJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"buyer": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"buyer_company_name":  map[string]any{"type": "string"},
					"buyer_person_name":   map[string]any{"type": "string"},
					"buyer_email_address": map[string]any{"type": "string"},
				},
			},
			"order": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"order_number": map[string]any{"type": "string"},
					"order_date":   map[string]any{"type": "string"},
					"delivery": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"properties": map[string]any{
							"delivery_address_street":      map[string]any{"type": "string"},
							"delivery_address_city":        map[string]any{"type": "string"},
							"delivery_address_postal_code": map[string]any{"type": "string"},
						},
					},
				},
			},
			"products": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"product_position":     map[string]any{"type": "integer"},
						"product_article_code": map[string]any{"type": "string"},
						"product_quantity":     map[string]any{"type": "integer"},
					},
				},
			},
		},
	}
}

func amountProp() map[string]any {
	return map[string]any{"type": []any{"number", "null"}}
}

// SchemaFor selects the canonical schema for a dataset.
func SchemaFor(dataset constants.Dataset) map[string]any {
	if dataset == constants.DatasetOrder {
		return BuildOrderJSONSchema()
	}
	return BuildInvoiceJSONSchema()
}
