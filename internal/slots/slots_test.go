package slots_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hall-booking-service/internal/slots"
	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

func TestDefaultTableResolve(t *testing.T) {
	table := slots.Default()

	cases := []struct {
		keyword string
		start   string
		end     string
	}{
		{"am", "09:00", "12:00"},
		{"pm", "13:00", "17:00"},
		{"udur", "18:00", "22:00"},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			r, err := table.Resolve(tc.keyword)
			require.NoError(t, err)
			assert.Equal(t, tc.start, r.Start)
			assert.Equal(t, tc.end, r.End)
		})
	}
}

func TestResolveUnknownKeyword(t *testing.T) {
	table := slots.Default()

	for _, keyword := range []string{"", "night", "AM", "pm "} {
		_, err := table.Resolve(keyword)
		require.Error(t, err, "keyword %q", keyword)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	}
}

func TestParseTable(t *testing.T) {
	t.Run("empty spec yields defaults", func(t *testing.T) {
		table, err := slots.ParseTable("")
		require.NoError(t, err)
		assert.Equal(t, slots.Default(), table)
	})

	t.Run("custom spec", func(t *testing.T) {
		table, err := slots.ParseTable("morning=08:00-11:30, evening=19:00-23:00")
		require.NoError(t, err)
		require.Len(t, table, 2)

		r, err := table.Resolve("morning")
		require.NoError(t, err)
		assert.Equal(t, slots.Range{Start: "08:00", End: "11:30"}, r)

		_, err = table.Resolve("am")
		assert.Error(t, err)
	})

	t.Run("invalid specs", func(t *testing.T) {
		for _, spec := range []string{
			"am",
			"am=09:00",
			"am=9:00-12:00",
			"am=09:00-25:00",
			"=09:00-12:00",
			",",
		} {
			_, err := slots.ParseTable(spec)
			assert.Error(t, err, "spec %q", spec)
		}
	})
}
