package typesense

import (
	"encoding/json"
	"strconv"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// productFromDocument maps a catalogue document onto a Product. IDs may be
// stored as numbers or strings; both are accepted.
func productFromDocument(doc map[string]any) domain.Product {
	return domain.Product{
		ProductID:       str(doc["product_id"]),
		SkuID:           str(doc["sku_id"]),
		Name:            str(doc["name"]),
		DepartmentName:  str(doc["department_name"]),
		CategoryName:    str(doc["category_name"]),
		SubCategoryName: str(doc["sub_category_name"]),
		BrandName:       str(doc["brand_name"]),
		Link:            str(doc["link"]),
		ImageURL:        str(doc["image_url"]),
		Stock:           num(doc["stock"]),
		ListPrice:       num(doc["list_price"]),
		Price:           num(doc["price"]),
		Size:            str(doc["size"]),
		Color:           str(doc["color"]),
		Gender:          str(doc["gender"]),
	}
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func num(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
