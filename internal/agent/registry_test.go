package agent

import (
	"testing"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(DefaultAgents())
	require.NoError(t, err)
	return reg
}

func TestDefaultAgentsAreValid(t *testing.T) {
	agents := DefaultAgents()
	require.Len(t, agents, 5)
	for _, a := range agents {
		assert.NoError(t, a.Validate(), a.ID)
	}
	assert.Equal(t, "gemini-2.5-flash-lite", agents[3].Model)
	assert.Equal(t, 0.95, agents[4].TopP)
	assert.Equal(t, 3200, agents[1].MaxTokens)
}

func TestNewRegistryRejectsBadInput(t *testing.T) {
	_, err := NewRegistry(nil)
	assert.Error(t, err)

	dup := DefaultAgents()
	dup[1].ID = dup[0].ID
	_, err = NewRegistry(dup)
	assert.ErrorContains(t, err, "duplicate id")

	bad := DefaultAgents()
	bad[2].Temperature = 3
	_, err = NewRegistry(bad)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestNewRegistryCopiesInput(t *testing.T) {
	agents := DefaultAgents()
	reg, err := NewRegistry(agents)
	require.NoError(t, err)

	agents[0].Name = "mutated"
	a, _ := reg.Get(0)
	assert.NotEqual(t, "mutated", a.Name)
}

func TestRegistryGet(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, 5, reg.Len())

	a, err := reg.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "1", a.ID)

	_, err = reg.Get(5)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
	_, err = reg.Get(-1)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestRegistryListIsCopy(t *testing.T) {
	reg := testRegistry(t)
	list := reg.List()
	list[0].Name = "changed"

	a, _ := reg.Get(0)
	assert.NotEqual(t, "changed", a.Name)
}

func TestRegistryUpdate(t *testing.T) {
	reg := testRegistry(t)

	a, _ := reg.Get(2)
	a.Name = "Contract reviewer"
	a.Temperature = 1.2
	a.Model = "gemini-2.0-flash"

	updated, err := reg.Update(2, a)
	require.NoError(t, err)
	assert.Equal(t, "Contract reviewer", updated.Name)

	got, _ := reg.Get(2)
	assert.Equal(t, a, got)
	assert.Equal(t, 5, reg.Len(), "update never changes length")
}

func TestRegistryUpdateKeepsIDWhenEmpty(t *testing.T) {
	reg := testRegistry(t)

	a, _ := reg.Get(1)
	a.ID = ""
	updated, err := reg.Update(1, a)
	require.NoError(t, err)
	assert.Equal(t, "2", updated.ID)
}

func TestRegistryUpdateRejectsIDChange(t *testing.T) {
	reg := testRegistry(t)

	a, _ := reg.Get(1)
	a.ID = "99"
	_, err := reg.Update(1, a)
	assert.ErrorContains(t, err, "cannot change")
}

func TestRegistryUpdateValidatesRanges(t *testing.T) {
	reg := testRegistry(t)
	before, _ := reg.Get(0)

	for _, mutate := range []func(*domain.AgentConfig){
		func(a *domain.AgentConfig) { a.Temperature = 2.5 },
		func(a *domain.AgentConfig) { a.TopP = 1.5 },
		func(a *domain.AgentConfig) { a.MaxTokens = 10 },
		func(a *domain.AgentConfig) { a.MaxTokens = 9000 },
	} {
		a := before
		mutate(&a)
		_, err := reg.Update(0, a)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	}

	after, _ := reg.Get(0)
	assert.Equal(t, before, after, "rejected updates leave the agent untouched")
}

func TestRegistryUpdateOutOfRange(t *testing.T) {
	reg := testRegistry(t)
	_, err := reg.Update(7, DefaultAgents()[0])
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestComposePrompt(t *testing.T) {
	a := domain.AgentConfig{UserPrompt: "Summarize:"}
	assert.Equal(t, "Summarize:\n\n---\nCONTEXT:\nABC", ComposePrompt(a, "ABC"))
}
