package workshop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap(t *testing.T) {
	doc := InitialDocument(fixedNow)
	doc.Customer.Name = "Acme"

	env := Wrap(doc, fixedNow)
	assert.Equal(t, Version, env.Version)
	assert.Equal(t, fixedNow, env.Timestamp)

	got, migrated, err := Unwrap(env)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, doc, got)
}

func TestWrapCopiesDocument(t *testing.T) {
	doc := InitialDocument(fixedNow)
	doc.Tools = append(doc.Tools, Tool{ID: "t1", Name: "Excel"})

	env := Wrap(doc, fixedNow)
	doc.Tools[0].Name = "changed"

	assert.Equal(t, "Excel", env.Data.Tools[0].Name)
}

func TestUnwrap_OlderVersionIsPassedThrough(t *testing.T) {
	doc := InitialDocument(fixedNow)

	got, migrated, err := Unwrap(Envelope{Version: "1.0.0", Data: &doc})

	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, doc, got)
}

func TestUnwrap_Empty(t *testing.T) {
	_, _, err := Unwrap(Envelope{Version: Version})
	assert.ErrorIs(t, err, ErrEmptyEnvelope)
}

func TestDecodeEnvelope(t *testing.T) {
	doc := InitialDocument(fixedNow)
	doc.Processes = append(doc.Processes, withScore(dailyHeavyProcess()))
	raw, err := json.Marshal(Wrap(doc, fixedNow))
	require.NoError(t, err)

	env, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, Version, env.Version)
	assert.Equal(t, doc, *env.Data)
}

func TestDecodeEnvelope_BareDocument(t *testing.T) {
	raw := []byte(`{
		"currentStep": 3,
		"customer": {"name": "Acme", "participants": []},
		"processes": [{"id": "p1", "name": "Legacy process", "frequency": "Monatlich"}],
		"hourlyRate": 50
	}`)

	env, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Empty(t, env.Version)
	assert.Equal(t, 3, env.Data.CurrentStep)
	assert.Equal(t, FrequencyMonthly, env.Data.Processes[0].Frequency)

	_, migrated, err := Unwrap(env)
	require.NoError(t, err)
	assert.True(t, migrated)
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"version": `))
	assert.Error(t, err)
}

func TestDocumentJSONShape(t *testing.T) {
	pkg := PackageStarter
	doc := InitialDocument(fixedNow)
	doc.SelectedPackage = &pkg

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{
		"currentStep", "customer", "tools", "processes", "automationScenarios",
		"selectedPackage", "customPackages", "hourlyRate", "notes", "actionItems",
	} {
		assert.Contains(t, fields, key)
	}
	assert.JSONEq(t, `"starter"`, string(fields["selectedPackage"]))
	assert.JSONEq(t, `null`, string(fields["customPackages"]))
}
