package crypto

import (
	"fmt"
	"strconv"

	"keycrypt-backend/internal/apperror"
)

// Codec transforms a flat record (field name -> value) into its
// encrypted-at-rest form and back. Every field is encrypted as one opaque
// string, except designated sequence fields, whose elements are encrypted
// independently so the stored form keeps the sequence's order and length.
type Codec struct {
	cipher         *Cipher
	sequenceFields map[string]struct{}
}

// NewCodec builds a Codec over the given cipher. sequenceFields names the
// record fields holding ordered string lists (for credentials: "keywords").
func NewCodec(c *Cipher, sequenceFields ...string) *Codec {
	set := make(map[string]struct{}, len(sequenceFields))
	for _, f := range sequenceFields {
		set[f] = struct{}{}
	}
	return &Codec{cipher: c, sequenceFields: set}
}

// Scalar values are stringified with a one-letter type prefix before
// encryption so decryption can restore the original dynamic type.
const (
	prefixString = "s:"
	prefixBool   = "b:"
	prefixInt    = "i:"
	prefixFloat  = "f:"
)

func encodeScalar(field string, v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return prefixString + t, nil
	case bool:
		return prefixBool + strconv.FormatBool(t), nil
	case int:
		return prefixInt + strconv.FormatInt(int64(t), 10), nil
	case int64:
		return prefixInt + strconv.FormatInt(t, 10), nil
	case float64:
		return prefixFloat + strconv.FormatFloat(t, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("field %q: unsupported value type %T", field, v)
	}
}

func decodeScalar(field, s string) (interface{}, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: field %q: malformed plaintext encoding", apperror.ErrDecryption, field)
	}
	prefix, rest := s[:2], s[2:]
	switch prefix {
	case prefixString:
		return rest, nil
	case prefixBool:
		b, err := strconv.ParseBool(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: malformed bool encoding", apperror.ErrDecryption, field)
		}
		return b, nil
	case prefixInt:
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: malformed int encoding", apperror.ErrDecryption, field)
		}
		return n, nil
	case prefixFloat:
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: malformed float encoding", apperror.ErrDecryption, field)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: field %q: unknown plaintext encoding", apperror.ErrDecryption, field)
	}
}

// asStringSlice accepts the two shapes a sequence field arrives in: []string
// from domain code, []interface{} from Firestore decoding.
func asStringSlice(field string, v interface{}) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []interface{}:
		out := make([]string, len(t))
		for i, el := range t {
			s, ok := el.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: element %d is %T, expected string", field, i, el)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: expected a string sequence, got %T", field, v)
	}
}

// EncryptRecord encrypts every field of record. It fully succeeds or fully
// fails: on any error no partial result is returned, so a half-encrypted
// document can never be persisted.
func (c *Codec) EncryptRecord(record map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(record))
	for field, value := range record {
		if _, isSeq := c.sequenceFields[field]; isSeq {
			elems, err := asStringSlice(field, value)
			if err != nil {
				return nil, err
			}
			encrypted := make([]string, len(elems))
			for i, el := range elems {
				ct, err := c.cipher.Encrypt(el)
				if err != nil {
					return nil, fmt.Errorf("field %q: element %d: %w", field, i, err)
				}
				encrypted[i] = ct
			}
			out[field] = encrypted
			continue
		}

		plain, err := encodeScalar(field, value)
		if err != nil {
			return nil, err
		}
		ct, err := c.cipher.Encrypt(plain)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		out[field] = ct
	}
	return out, nil
}

// DecryptRecord is the mirror of EncryptRecord. A value that was not produced
// under this codec's key fails with apperror.ErrDecryption rather than
// decoding to garbage.
func (c *Codec) DecryptRecord(record map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(record))
	for field, value := range record {
		if _, isSeq := c.sequenceFields[field]; isSeq {
			elems, err := asStringSlice(field, value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperror.ErrDecryption, err.Error())
			}
			decrypted := make([]string, len(elems))
			for i, el := range elems {
				pt, err := c.cipher.Decrypt(el)
				if err != nil {
					return nil, fmt.Errorf("field %q: element %d: %w", field, i, err)
				}
				decrypted[i] = pt
			}
			out[field] = decrypted
			continue
		}

		ct, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q: expected ciphertext string, got %T", apperror.ErrDecryption, field, value)
		}
		plain, err := c.cipher.Decrypt(ct)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		decoded, err := decodeScalar(field, plain)
		if err != nil {
			return nil, err
		}
		out[field] = decoded
	}
	return out, nil
}
