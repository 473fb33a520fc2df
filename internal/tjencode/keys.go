package tjencode

import (
	"reflect"

	"github.com/turbojson/turbojson/internal/tjnum"
	"github.com/turbojson/turbojson/internal/tjoptions"
	"github.com/turbojson/turbojson/internal/tjvalue"
	"github.com/turbojson/turbojson/tjerr"
)

// formatMapKey converts a reflect map key to its JSON object key string
// (spec §4.7). NON_STR_KEYS widens the accepted key kinds beyond string;
// STRICT_INTEGER does not apply here — integer keys use the full
// int64/uint64 window regardless of that option.
func (st *state) formatMapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tjnum.FormatInt(k.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return tjnum.FormatUint(k.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := k.Float()
		if s, err := tjnum.FormatFloat(f); err == nil {
			return s, nil
		}
		return "null", nil
	case reflect.Bool:
		if k.Bool() {
			return "true", nil
		}
		return "false", nil
	default:
	}

	iface := k.Interface()
	switch v := iface.(type) {
	case tjvalue.Date:
		return formatDate(v), nil
	case tjvalue.Time:
		if err := checkTimeLocation(v); err != nil {
			return "", err
		}
		return formatTime(v, st.opt), nil
	case tjvalue.Datetime:
		return formatDatetime(v, st.opt), nil
	case tjvalue.UUID:
		return formatUUID(v), nil
	}

	if !st.opt.Has(tjoptions.NonStrKeys) {
		return "", tjerr.NewEncodeError(tjerr.NonStringKey, "unsupported map key type without NON_STR_KEYS")
	}
	return "", tjerr.NewEncodeError(tjerr.NonStringKey, "unsupported map key type: "+k.Type().String())
}
