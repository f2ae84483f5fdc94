package events

import "github.com/googleapis/google-cloudevents-go/cloud/firestoredata"

// convertFields turns Firestore wire values into plain Go values: nil, bool, int64,
// float64, time.Time, string, []byte, []any, map[string]any. References are returned as
// their resource name and geo points as *latlng.LatLng.
func convertFields(fields map[string]*firestoredata.Value) map[string]any {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		out[name] = convertValue(value)
	}
	return out
}

func convertValue(value *firestoredata.Value) any {
	switch v := value.GetValueType().(type) {
	case *firestoredata.Value_BooleanValue:
		return v.BooleanValue
	case *firestoredata.Value_IntegerValue:
		return v.IntegerValue
	case *firestoredata.Value_DoubleValue:
		return v.DoubleValue
	case *firestoredata.Value_TimestampValue:
		return v.TimestampValue.AsTime()
	case *firestoredata.Value_StringValue:
		return v.StringValue
	case *firestoredata.Value_BytesValue:
		return v.BytesValue
	case *firestoredata.Value_ReferenceValue:
		return v.ReferenceValue
	case *firestoredata.Value_GeoPointValue:
		return v.GeoPointValue
	case *firestoredata.Value_ArrayValue:
		items := v.ArrayValue.GetValues()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = convertValue(item)
		}
		return out
	case *firestoredata.Value_MapValue:
		return convertFields(v.MapValue.GetFields())
	default:
		// null_value or unset
		return nil
	}
}
