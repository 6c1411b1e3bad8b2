package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON_String(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"15m"`), &d))
	require.Equal(t, 15*time.Minute, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`"720h"`), &d))
	require.Equal(t, 720*time.Hour, d.Duration)
}

func TestDuration_UnmarshalJSON_Number(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`1500000000`), &d))
	require.Equal(t, 1500*time.Millisecond, d.Duration)
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not a duration string", `"abc"`},
		{"wrong type", `true`},
		{"object", `{}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			require.Error(t, json.Unmarshal([]byte(tc.in), &d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"1m30s"`, string(b))
}

func TestDuration_RoundTrip(t *testing.T) {
	in := Duration{Duration: 36 * time.Hour}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Duration
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, in.Duration, out.Duration)
}
