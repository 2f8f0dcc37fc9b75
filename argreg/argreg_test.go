package argreg_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigargs/argreg"
)

func TestParserAddArgument(t *testing.T) {
	p := argreg.NewParser()

	opt, err := p.AddArgument("--batch_size", argreg.Config{Type: reflect.TypeOf(0), Required: true})
	require.NoError(t, err)
	assert.Equal(t, "batch_size", opt.Dest)
	assert.False(t, opt.Positional)

	pos, err := p.AddArgument("path", argreg.Config{Type: reflect.TypeOf("")})
	require.NoError(t, err)
	assert.True(t, pos.Positional)
	assert.Equal(t, "path", pos.Dest)

	got, ok := p.Lookup("batch_size")
	require.True(t, ok)
	assert.True(t, got.Config.Required)

	opts := p.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "batch_size", opts[0].Dest)
	assert.Equal(t, "path", opts[1].Dest)
}

func TestParserRejectsDuplicates(t *testing.T) {
	p := argreg.NewParser()

	_, err := p.AddArgument("--x", argreg.Config{})
	require.NoError(t, err)
	_, err = p.AddArgument("--x", argreg.Config{})
	assert.Error(t, err)

	// positional and flag forms share the destination space
	_, err = p.AddArgument("x", argreg.Config{})
	assert.Error(t, err)

	_, err = p.AddArgument("", argreg.Config{})
	assert.Error(t, err)
}

func TestGroupsTrackMembers(t *testing.T) {
	p := argreg.NewParser()
	g := p.AddArgumentGroup("Model settings", "model")

	_, err := g.AddArgument("--model.depth", argreg.Config{Type: reflect.TypeOf(0)})
	require.NoError(t, err)
	_, err = g.AddArgument("--model.rate", argreg.Config{Type: reflect.TypeOf(0.0)})
	require.NoError(t, err)

	assert.Equal(t, []string{"model.depth", "model.rate"}, g.Dests())

	// group registrations surface on the parser
	_, ok := p.Lookup("model.depth")
	assert.True(t, ok)

	groups := p.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "Model settings", groups[0].Title)
	assert.Equal(t, "model", groups[0].Name)
}
