package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routedoc/routedoc/internal/models"
	"github.com/routedoc/routedoc/internal/source"
)

func TestDescribe(t *testing.T) {
	reflector := NewReflector()

	t.Run("nil and non-nominal types", func(t *testing.T) {
		assert.Nil(t, reflector.Describe(nil))
		assert.Nil(t, reflector.Describe(&fakeType{fqn: "string", opaque: true}))
	})

	t.Run("own fields only", func(t *testing.T) {
		user := &fakeType{
			fqn: "example.com/app/dto.User",
			fields: []source.Field{
				{Name: "Name", TypeFQN: "string"},
				{Name: "Email", TypeFQN: "string"},
			},
		}

		dto := reflector.Describe(user)
		require.NotNil(t, dto)
		assert.Equal(t, "example.com/app/dto.User", dto.TypeFQN)
		assert.Equal(t, []models.Param{
			{Name: "Name", TypeFQN: "string"},
			{Name: "Email", TypeFQN: "string"},
		}, dto.Fields)
	})

	t.Run("ancestor fields follow own fields", func(t *testing.T) {
		base := &fakeType{
			fqn:    "example.com/app/dto.Base",
			fields: []source.Field{{Name: "ID", TypeFQN: "int64"}},
		}
		user := &fakeType{
			fqn:    "example.com/app/dto.User",
			fields: []source.Field{{Name: "Name", TypeFQN: "string"}},
			super:  base,
		}

		dto := reflector.Describe(user)
		require.NotNil(t, dto)
		assert.Equal(t, []models.Param{
			{Name: "Name", TypeFQN: "string"},
			{Name: "ID", TypeFQN: "int64"},
		}, dto.Fields)
	})

	t.Run("walk ends at a non-nominal ancestor", func(t *testing.T) {
		user := &fakeType{
			fqn:    "example.com/app/dto.User",
			fields: []source.Field{{Name: "Name", TypeFQN: "string"}},
			super:  &fakeType{fqn: "string", opaque: true},
		}

		dto := reflector.Describe(user)
		require.NotNil(t, dto)
		assert.Equal(t, []models.Param{{Name: "Name", TypeFQN: "string"}}, dto.Fields)
	})

	t.Run("shadowed fields are repeated, not de-duplicated", func(t *testing.T) {
		base := &fakeType{
			fqn:    "example.com/app/dto.Base",
			fields: []source.Field{{Name: "ID", TypeFQN: "int64"}},
		}
		user := &fakeType{
			fqn:    "example.com/app/dto.User",
			fields: []source.Field{{Name: "ID", TypeFQN: "string"}},
			super:  base,
		}

		dto := reflector.Describe(user)
		require.NotNil(t, dto)
		require.Len(t, dto.Fields, 2)
		assert.Equal(t, "ID", dto.Fields[0].Name)
		assert.Equal(t, "ID", dto.Fields[1].Name)
	})
}
