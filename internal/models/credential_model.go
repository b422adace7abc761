package models

import "fmt"

// Credential is one saved secret per site. Every field except ID is stored
// encrypted; ID is the store's own document key and never encrypted.
type Credential struct {
	ID       string   `json:"id" firestore:"-"`
	Website  string   `json:"website" validate:"required"`
	Username string   `json:"username" validate:"required,min=3,emailuser"`
	Password string   `json:"password" validate:"required,min=6"`
	Keywords []string `json:"keywords,omitempty" validate:"omitempty,dive,required"`
}

// Record flattens the credential into the field map the codec encrypts.
// A nil Keywords slice means the optional field is absent; an empty one is
// kept so it round-trips as empty.
func (c *Credential) Record() map[string]interface{} {
	rec := map[string]interface{}{
		"website":  c.Website,
		"username": c.Username,
		"password": c.Password,
	}
	if c.Keywords != nil {
		rec["keywords"] = c.Keywords
	}
	return rec
}

// CredentialFromRecord rebuilds a Credential from a decrypted field map.
func CredentialFromRecord(id string, rec map[string]interface{}) (*Credential, error) {
	c := &Credential{ID: id}
	var err error
	if c.Website, err = stringField(rec, "website"); err != nil {
		return nil, err
	}
	if c.Username, err = stringField(rec, "username"); err != nil {
		return nil, err
	}
	if c.Password, err = stringField(rec, "password"); err != nil {
		return nil, err
	}
	if raw, ok := rec["keywords"]; ok {
		kws, ok := raw.([]string)
		if !ok {
			return nil, fmt.Errorf("credential %s: keywords has unexpected type %T", id, raw)
		}
		c.Keywords = kws
	}
	return c, nil
}

func stringField(rec map[string]interface{}, field string) (string, error) {
	raw, ok := rec[field]
	if !ok {
		return "", fmt.Errorf("record is missing field %q", field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("record field %q has unexpected type %T", field, raw)
	}
	return s, nil
}
