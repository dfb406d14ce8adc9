package adapter

// organicKey is the Serper field holding ordinary web results.
const organicKey = "organic"

// Normalize maps a raw Serper payload to a NormalizedResult.
// It never fails: missing or mistyped data yields fewer populated fields.
func Normalize(raw map[string]any) *NormalizedResult {
	organic, _ := raw[organicKey].([]any)

	results := make([]ResultItem, 0, len(organic))
	for _, entry := range organic {
		fields, _ := entry.(map[string]any)
		results = append(results, ResultItem{
			Title:   optionalString(fields, "title"),
			URL:     optionalString(fields, "link"),
			Content: optionalString(fields, "snippet"),
			Source:  SourceSerperGoogle,
		})
	}

	return &NormalizedResult{
		MCPVersion: SchemaVersion,
		Results:    results,
	}
}

func optionalString(fields map[string]any, key string) *string {
	if fields == nil {
		return nil
	}
	s, ok := fields[key].(string)
	if !ok {
		return nil
	}
	return &s
}
