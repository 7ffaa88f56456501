package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type persistedEntry struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	ID       string `json:"id"`
}

func encodeEntries(entries []Entry) (string, error) {
	persisted := make([]persistedEntry, 0, len(entries))
	for _, e := range entries {
		persisted = append(persisted, persistedEntry{
			Name:     e.Name,
			Price:    e.Price,
			Image:    e.Image,
			Quantity: e.Quantity,
			ID:       e.ID,
		})
	}

	asJSON, err := json.Marshal(persisted)
	if err != nil {
		return "", fmt.Errorf("error marshalling cart entries: %w", err)
	}
	return string(asJSON), nil
}

// decodeEntries reads fields by name and falls back to defaults for anything missing
// or of an unexpected type. Records without a name or price are dropped, quantities
// below 1 become 1 and records for the same item are merged.
func decodeEntries(payload string) ([]Entry, error) {
	records := []map[string]json.RawMessage{}
	err := json.Unmarshal([]byte(payload), &records)
	if err != nil {
		return nil, fmt.Errorf("error parsing persisted cart: %w", err)
	}

	entries := []Entry{}
	for _, record := range records {
		name := stringField(record, "name")
		price := stringField(record, "price")
		if strings.TrimSpace(name) == "" || strings.TrimSpace(price) == "" {
			continue
		}
		quantity := quantityField(record, "quantity")

		merged := false
		for i := range entries {
			if entries[i].sameItem(name, price) {
				entries[i].Quantity = addQuantity(entries[i].Quantity, quantity)
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		entries = append(entries, Entry{
			Name:     name,
			Price:    price,
			Image:    stringField(record, "image"),
			Quantity: quantity,
			ID:       stringField(record, "id"),
		})
	}

	return entries, nil
}

func stringField(record map[string]json.RawMessage, field string) string {
	raw, found := record[field]
	if !found {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	// numeric ids written by earlier versions
	var n json.Number
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if decoder.Decode(&n) == nil {
		return n.String()
	}

	return ""
}

// quantityField reads an integer quantity. Fractions are truncated, and values outside
// 1..MaxQuantity are brought back into that range.
func quantityField(record map[string]json.RawMessage, field string) int {
	raw, found := record[field]
	if !found {
		return 1
	}

	var n json.Number
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if decoder.Decode(&n) != nil {
		return 1
	}

	q, err := n.Int64()
	if err != nil {
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) {
			return 1
		}
		if f > MaxQuantity {
			return MaxQuantity
		}
		if f < 1 {
			return 1
		}
		return int(f)
	}

	if q < 1 {
		return 1
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return int(q)
}
