package store

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode converts a tagged struct into a Record using its json field names.
func Encode(v interface{}) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode record")
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "encode record")
	}
	return rec, nil
}

// Decode fills out from rec, matching fields by their json tag. Scalar
// types are coerced, so a numeric string still decodes into a float field.
func Decode(rec Record, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "decode record")
	}
	if err := dec.Decode(map[string]interface{}(rec)); err != nil {
		return errors.Wrap(err, "decode record")
	}
	return nil
}

func marshalData(rec Record) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalData(data string) (Record, error) {
	rec := Record{}
	if data == "" {
		return rec, nil
	}
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
