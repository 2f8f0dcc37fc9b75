package actions_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigargs/actions"
)

type compression string

func (c compression) String() string  { return string(c) }
func (compression) Choices() []string { return []string{"none", "gzip", "zstd"} }
func (c *compression) Set(name string) error {
	for _, choice := range (compression("")).Choices() {
		if choice == name {
			*c = compression(name)
			return nil
		}
	}
	return fmt.Errorf("invalid compression %q", name)
}

func TestEnumChoice(t *testing.T) {
	action, err := actions.NewEnumChoice(reflect.TypeOf(compression("")))
	require.NoError(t, err)

	assert.Equal(t, []string{"none", "gzip", "zstd"}, action.Choices())

	v, err := action.Apply("gzip")
	require.NoError(t, err)
	assert.Equal(t, compression("gzip"), v)

	_, err = action.Apply("brotli")
	assert.Error(t, err)
}

func TestEnumChoiceRejectsPlainTypes(t *testing.T) {
	_, err := actions.NewEnumChoice(reflect.TypeOf(""))
	assert.ErrorIs(t, err, actions.ErrNotEnum)

	_, err = actions.NewEnumChoice(reflect.TypeOf(0))
	assert.ErrorIs(t, err, actions.ErrNotEnum)
}
