package stagger_test

import (
	"testing"

	"github.com/fwojciec/stagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires company", func(t *testing.T) {
		t.Parallel()

		c := &stagger.Contact{Name: "Jo", Email: "jo@acme.com"}

		err := c.Validate()

		assert.Equal(t, stagger.EINVALID, stagger.ErrorCode(err))
	})

	t.Run("accepts company without name or email", func(t *testing.T) {
		t.Parallel()

		c := &stagger.Contact{Company: "Acme"}

		assert.NoError(t, c.Validate())
	})
}

func TestTargets(t *testing.T) {
	t.Parallel()

	t.Run("drops contacts without name or email", func(t *testing.T) {
		t.Parallel()

		contacts := []*stagger.Contact{
			{Company: "Acme", Name: "Jo", Email: "jo@acme.com"},
			{Company: "Beta", Name: "Bo", Email: ""},
			{Company: "Gamma", Name: "", Email: "info@gamma.com"},
			{Company: "Delta", Name: "Di", Email: "di@delta.com"},
		}

		targets, err := stagger.Targets(contacts)

		require.NoError(t, err)
		require.Len(t, targets, 2)
		assert.Equal(t, "Acme", targets[0].Company)
		assert.Equal(t, "Delta", targets[1].Company)
	})

	t.Run("returns EINVALID when nothing qualifies", func(t *testing.T) {
		t.Parallel()

		contacts := []*stagger.Contact{
			{Company: "Beta", Name: "Bo"},
		}

		targets, err := stagger.Targets(contacts)

		assert.Nil(t, targets)
		assert.Equal(t, stagger.EINVALID, stagger.ErrorCode(err))
		assert.Contains(t, stagger.ErrorMessage(err), "no valid targets")
	})

	t.Run("returns EINVALID for an empty store", func(t *testing.T) {
		t.Parallel()

		_, err := stagger.Targets(nil)

		assert.Equal(t, stagger.EINVALID, stagger.ErrorCode(err))
	})
}
