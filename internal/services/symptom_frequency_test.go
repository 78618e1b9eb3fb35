package services

import "testing"

func TestCountSymptomFrequency(t *testing.T) {
	frequency := CountSymptomFrequency([]string{
		`["cramps","fatigue"]`,
		`["cramps"]`,
	})

	if frequency["cramps"] != 2 {
		t.Fatalf("expected cramps count 2, got %d", frequency["cramps"])
	}
	if frequency["fatigue"] != 1 {
		t.Fatalf("expected fatigue count 1, got %d", frequency["fatigue"])
	}
	if len(frequency) != 2 {
		t.Fatalf("expected 2 distinct symptoms, got %d", len(frequency))
	}
}

func TestCountSymptomFrequencySkipsMalformedPayloads(t *testing.T) {
	frequency := CountSymptomFrequency([]string{
		`["headache"]`,
		`{broken`,
		``,
		`["headache","bloating"]`,
	})

	if frequency["headache"] != 2 {
		t.Fatalf("expected headache count 2, got %d", frequency["headache"])
	}
	if frequency["bloating"] != 1 {
		t.Fatalf("expected bloating count 1, got %d", frequency["bloating"])
	}
}

func TestCountSymptomFrequencyEmptyInput(t *testing.T) {
	frequency := CountSymptomFrequency(nil)
	if len(frequency) != 0 {
		t.Fatalf("expected empty frequency map, got %v", frequency)
	}
}
