package services

import (
	"encoding/json"
	"log"
	"strings"
)

// CountSymptomFrequency tallies symptom tags across serialized symptom
// payloads. A payload that fails to decode is skipped so one corrupt record
// cannot abort the aggregate.
func CountSymptomFrequency(payloads []string) map[string]int {
	frequency := make(map[string]int)
	for _, payload := range payloads {
		if strings.TrimSpace(payload) == "" {
			continue
		}

		var symptoms []string
		if err := json.Unmarshal([]byte(payload), &symptoms); err != nil {
			log.Printf("skip unparsable symptoms payload %q: %v", payload, err)
			continue
		}
		for _, symptom := range symptoms {
			frequency[symptom]++
		}
	}
	return frequency
}
