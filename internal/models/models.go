package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
// Numbers are json.Number so their original decimal text survives decoding.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue
