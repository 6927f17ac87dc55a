package validate_test

import (
	"errors"
	"testing"

	"annonsplats/internal/domain"
	"annonsplats/internal/pkg/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		err := validate.Struct(&domain.CreateAdInput{
			Title:       "Gräsklippning",
			Description: "Klippa gräsmattan en gång i veckan",
			Region:      "Skåne län",
		})
		assert.NoError(t, err)
	})

	t.Run("Reports json field names", func(t *testing.T) {
		err := validate.Struct(&domain.CreateAdInput{Title: "ab", PosterCategory: "company"})

		var verr *validate.Error
		require.True(t, errors.As(err, &verr))

		fields := map[string]string{}
		for _, f := range verr.Fields {
			fields[f.Field] = f.Rule
		}
		assert.Equal(t, "min", fields["title"])
		assert.Equal(t, "required", fields["description"])
		assert.Equal(t, "required", fields["region"])
		assert.Equal(t, "oneof", fields["poster_category"])
	})

	t.Run("Rejects non-struct", func(t *testing.T) {
		assert.Error(t, validate.Struct("nope"))
	})
}
