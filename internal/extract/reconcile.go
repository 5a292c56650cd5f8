package extract

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/beamdocs/docharvest/constants"
	"github.com/beamdocs/docharvest/internal/common"
	"github.com/beamdocs/docharvest/internal/normalize"
)

// Reconciliation aligns a raw capability reply with the canonical dataset
// schema: known key variants are renamed, scalars are coerced to their target
// types, and keys outside the schema are pruned. Each dataset declares its
// migrations as an explicit table so the alignment is deterministic and a
// failed coercion surfaces as ErrSchemaCoercion instead of a silent default.

type coercion func(v any) (any, error)

type fieldMigration struct {
	source string // dotted path in the raw reply
	target string // dotted path in the canonical payload
	coerce coercion
}

var invoiceMigrations = []fieldMigration{
	{source: "total_gross", target: "total_gross", coerce: coerceAmount},
	{source: "total_net", target: "total_net", coerce: coerceAmount},
	{source: "business_name", target: "business_name", coerce: coerceString},
	{source: "items", target: "items", coerce: coerceItems},
}

var orderMigrations = []fieldMigration{
	// the capability sometimes emits a singular bare object
	{source: "product", target: "products", coerce: coerceProducts},
	{source: "products", target: "products", coerce: coerceProducts},
	{source: "order.order_date", target: "order.order_date", coerce: coerceDate},
}

var productCoercions = map[string]coercion{
	"product_position":     coerceInt,
	"product_article_code": coerceString,
	"product_quantity":     coerceInt,
}

// Reconcile mutates the parsed reply in place. Returned dropped names are the
// pruned unknown keys, for diagnostics.
func Reconcile(dataset constants.Dataset, m map[string]any) ([]string, error) {
	migrations := invoiceMigrations
	if dataset == constants.DatasetOrder {
		migrations = orderMigrations
	}

	for _, fm := range migrations {
		v, ok := getPath(m, fm.source)
		if !ok {
			continue
		}
		if fm.source != fm.target {
			deletePath(m, fm.source)
			if _, exists := getPath(m, fm.target); exists {
				continue // don't overwrite a value already present
			}
		}
		cv, err := fm.coerce(v)
		if err != nil {
			return nil, common.NewAppError("SCHEMA_COERCION",
				fmt.Sprintf("field %q: %v", fm.target, err), common.ErrSchemaCoercion)
		}
		setPath(m, fm.target, cv)
	}

	dropped := pruneToSchema(m, SchemaFor(dataset), "")
	slices.Sort(dropped)
	return dropped, nil
}

// --- coercions ---

func coerceAmount(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return math.Round(t*100) / 100, nil
	case string:
		if f, ok := normalize.Amount(t); ok {
			return f, nil
		}
		// unparseable amounts become an explicit absence, not a failure
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot treat %T as amount", v)
	}
}

func coerceString(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return nil, fmt.Errorf("cannot treat %T as string", v)
	}
}

func coerceInt(v any) (any, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case float64:
		if t != math.Trunc(t) {
			return nil, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", t)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("cannot treat %T as integer", v)
	}
}

func coerceDate(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("cannot treat %T as date", v)
	}
	return normalize.Date(s), nil
}

func coerceItems(v any) (any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("items must be a sequence, got %T", v)
	}
	for i, el := range list {
		item, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d must be an object, got %T", i, el)
		}
		if name, ok := item["name"]; ok {
			cv, err := coerceString(name)
			if err != nil {
				return nil, fmt.Errorf("item %d name: %v", i, err)
			}
			item["name"] = cv
		}
		if price, ok := item["price"]; ok {
			cv, err := coerceAmount(price)
			if err != nil {
				return nil, fmt.Errorf("item %d price: %v", i, err)
			}
			item["price"] = cv
		}
	}
	return list, nil
}

func coerceProducts(v any) (any, error) {
	var list []any
	switch t := v.(type) {
	case map[string]any:
		list = []any{t} // bare object instead of a sequence
	case []any:
		list = t
	default:
		return nil, fmt.Errorf("products must be a sequence or object, got %T", v)
	}
	for i, el := range list {
		product, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("product %d must be an object, got %T", i, el)
		}
		for field, coerce := range productCoercions {
			raw, ok := product[field]
			if !ok {
				continue
			}
			cv, err := coerce(raw)
			if err != nil {
				return nil, fmt.Errorf("product %d %s: %v", i, field, err)
			}
			product[field] = cv
		}
	}
	return list, nil
}

// --- dotted-path helpers ---

func getPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := m
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		cur, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func setPath(m map[string]any, path string, v any) {
	parts := strings.Split(path, ".")
	cur := m
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

func deletePath(m map[string]any, path string) {
	parts := strings.Split(path, ".")
	cur := m
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
}

// pruneToSchema removes keys the canonical schema does not define, descending
// into nested objects and array elements. Returns the dotted names dropped.
func pruneToSchema(m map[string]any, schema map[string]any, prefix string) []string {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil
	}
	var dropped []string
	for k, v := range m {
		sub, known := props[k].(map[string]any)
		if !known {
			delete(m, k)
			dropped = append(dropped, prefix+k)
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			dropped = append(dropped, pruneToSchema(t, sub, prefix+k+".")...)
		case []any:
			items, ok := sub["items"].(map[string]any)
			if !ok {
				continue
			}
			for i, el := range t {
				if obj, ok := el.(map[string]any); ok {
					p := fmt.Sprintf("%s%s[%d].", prefix, k, i)
					dropped = append(dropped, pruneToSchema(obj, items, p)...)
				}
			}
		}
	}
	return dropped
}
