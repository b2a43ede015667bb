package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcoliz/gherkingen/catalog"
	"github.com/jcoliz/gherkingen/models"
)

func TestFind_ExactZeroParamMatchIsCaseInsensitive(t *testing.T) {
	c := catalog.New([]models.StepDefinition{
		{Kind: models.Given, Pattern: "I am logged in", MethodName: "IAmLoggedIn"},
	})

	def, args, ok := c.Find(models.Given, "I AM LOGGED IN")
	require.True(t, ok)
	assert.Empty(t, args)
	assert.Equal(t, "IAmLoggedIn", def.MethodName)
}

func TestFind_ParametricMatchIsStableInInsertionOrder(t *testing.T) {
	c := catalog.New([]models.StepDefinition{
		{Kind: models.Given, Pattern: "I have {x} items", MethodName: "First", Params: []models.Param{{Type: "int", Name: "x"}}},
		{Kind: models.Given, Pattern: "I have {x} items", MethodName: "Second", Params: []models.Param{{Type: "int", Name: "x"}}},
	})

	def, args, ok := c.Find(models.Given, "I have 5 items")
	require.True(t, ok)
	assert.Equal(t, "First", def.MethodName)
	assert.Equal(t, []string{"5"}, args)
}

func TestFind_WrongKindNeverMatches(t *testing.T) {
	c := catalog.New([]models.StepDefinition{
		{Kind: models.Given, Pattern: "I am logged in"},
	})

	_, _, ok := c.Find(models.When, "I am logged in")
	assert.False(t, ok)
}

func TestFind_NoMatchReturnsFalse(t *testing.T) {
	c := catalog.New(nil)

	_, _, ok := c.Find(models.Given, "anything")
	assert.False(t, ok)
}
