package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque identifier. The service emits ids as strings or numbers.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	raw, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(raw)
	return nil
}

// Price is the raw price text. The service emits prices as strings or numbers.
type Price string

// UnmarshalJSON accepts a JSON string, number or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decode price: %w", err)
	}
	*p = Price(raw)
	return nil
}

// CategoryRef is an item's category as delivered by the service: a nested
// {_id, name} object, a bare name, or null.
type CategoryRef struct {
	ID   ID
	Name string
}

// UnmarshalJSON normalizes the three accepted shapes.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*c = CategoryRef{}
		return nil
	case trimmed[0] == '{':
		var rec CategoryRecord
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return fmt.Errorf("decode category: %w", err)
		}
		*c = CategoryRef{ID: rec.ID, Name: rec.Name}
		return nil
	default:
		name, err := scalarString(trimmed)
		if err != nil {
			return fmt.Errorf("decode category: %w", err)
		}
		*c = CategoryRef{Name: name}
		return nil
	}
}

// CategoryRecord mirrors /api/categories entries.
type CategoryRecord struct {
	ID   ID     `json:"_id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either "_id" or "id".
func (r *CategoryRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID ID     `json:"_id"`
		ID      ID     `json:"id"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = firstID(raw.MongoID, raw.ID)
	r.Name = raw.Name
	return nil
}

// ItemRecord mirrors /api/items entries.
type ItemRecord struct {
	ID          ID          `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       Price       `json:"price"`
	Category    CategoryRef `json:"category"`
}

// UnmarshalJSON accepts either "_id" or "id".
func (r *ItemRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID     ID          `json:"_id"`
		ID          ID          `json:"id"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Price       Price       `json:"price"`
		Category    CategoryRef `json:"category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ItemRecord{
		ID:          firstID(raw.MongoID, raw.ID),
		Name:        raw.Name,
		Description: raw.Description,
		Price:       raw.Price,
		Category:    raw.Category,
	}
	return nil
}

// ItemPayload is the body of item create and update requests. The category
// is sent by name.
type ItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
}

// CategoryPayload is the body of category create and rename requests.
type CategoryPayload struct {
	Name string `json:"name"`
}

// Credentials is the body of /api/auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the /api/auth/login payload.
type LoginResponse struct {
	Token string `json:"token"`
}

// errorBody is the error payload shape the service uses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func firstID(ids ...ID) ID {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}

// scalarString renders a JSON string, number or null as text.
func scalarString(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", err
	}
	return n.String(), nil
}
