package ordermatrix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotList is returned when the raw line item payload is not a list
var ErrNotList = errors.New("line items payload is not a list")

// MaxQuantity is the largest quantity a single line may carry.
// Larger values are treated like unparseable input.
const MaxQuantity = math.MaxInt32

var maxQuantity = decimal.NewFromInt(MaxQuantity)

// Record is a raw line item as received from the sales API or the database.
// Keys follow the API naming: brand (or name), style, size, quantity (or qty).
type Record map[string]any

// LineItem represents one ordered quantity of a brand/style/size
type LineItem struct {
	Brand    string `json:"brand"`
	Style    string `json:"style"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Normalize converts raw records into line items.
// Records without brand, style or size are dropped. Quantities that are not
// numeric or are negative become 0.
func Normalize(records []Record) []LineItem {
	items := make([]LineItem, 0, len(records))
	for _, rec := range records {
		item, ok := normalizeRecord(rec)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// NormalizeJSON decodes a JSON array of records and normalizes it
func NormalizeJSON(data []byte) ([]LineItem, error) {
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	return Normalize(records), nil
}

// DecodeRecords decodes a JSON array into records, keeping numbers as json.Number.
// Only a payload that is not an array is an error; elements that are not
// objects are dropped like any other malformed record.
func DecodeRecords(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotList, err)
	}
	if raw == nil {
		// "null" decodes into a nil slice
		return nil, ErrNotList
	}

	records := make([]Record, 0, len(raw))
	for _, elem := range raw {
		var rec Record
		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil || rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeRecord(rec Record) (LineItem, bool) {
	brand := rec.Text("brand", "name")
	style := rec.Text("style")
	size := rec.Text("size")
	if brand == "" || style == "" || size == "" {
		return LineItem{}, false
	}
	return LineItem{
		Brand:    brand,
		Style:    style,
		Size:     size,
		Quantity: quantityField(rec, "quantity", "qty"),
	}, true
}

// Text returns the first non-blank value among keys as trimmed text.
// Numbers are formatted without exponent; other types are skipped.
func (rec Record) Text(keys ...string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			s = strconv.Itoa(t)
		case int64:
			s = strconv.FormatInt(t, 10)
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func quantityField(rec Record, keys ...string) int {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		return ParseQuantity(v)
	}
	return 0
}

// ParseQuantity coerces a raw quantity into a non-negative integer.
// Fractions are rounded half away from zero; anything unparseable, negative
// or above MaxQuantity is 0.
func ParseQuantity(v any) int {
	var d decimal.Decimal
	switch t := v.(type) {
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		d = decimal.NewFromFloat(t)
	case json.Number:
		parsed, err := decimal.NewFromString(t.String())
		if err != nil {
			return 0
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		d = parsed
	default:
		return 0
	}

	d = d.Round(0)
	if d.IsNegative() || d.GreaterThan(maxQuantity) {
		return 0
	}
	return int(d.IntPart())
}

// valid reports whether the item has brand, style and size
func (it LineItem) valid() bool {
	return strings.TrimSpace(it.Brand) != "" &&
		strings.TrimSpace(it.Style) != "" &&
		strings.TrimSpace(it.Size) != ""
}

// sanitizeItems drops items missing a key and zeroes out-of-range quantities,
// the same rules Normalize applies to raw records
func sanitizeItems(items []LineItem) []LineItem {
	clean := make([]LineItem, 0, len(items))
	for _, it := range items {
		if !it.valid() {
			continue
		}
		if it.Quantity < 0 || it.Quantity > MaxQuantity {
			it.Quantity = 0
		}
		clean = append(clean, it)
	}
	return clean
}
