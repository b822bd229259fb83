package override

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) (*container.Container, *store.MockSessionStore) {
	mock := &store.MockSessionStore{}
	c, err := container.NewContainer(config.Default(),
		container.WithLogger(logging.Nop()), container.WithStore(mock))
	require.NoError(t, err)
	return c, mock
}

func TestSetUnset(t *testing.T) {
	c, mock := newContainer(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, c, "Kantoorartikelen", "otherExpenses"))
	assert.Equal(t, models.BucketOtherExpenses, mock.Session.Overrides["Kantoorartikelen"])

	assert.Error(t, Set(ctx, c, "Kantoorartikelen", "misc"))

	require.NoError(t, Unset(ctx, c, "Kantoorartikelen"))
	assert.Empty(t, mock.Session.Overrides)
	assert.Error(t, Unset(ctx, c, "Kantoorartikelen"))
}

func TestOrder(t *testing.T) {
	c, mock := newContainer(t)
	ctx := context.Background()

	require.NoError(t, Order(ctx, c, "sales", []string{"B", "A"}))
	assert.Equal(t, []string{"B", "A"}, mock.Session.SortOrder[models.BucketSales])

	require.NoError(t, Order(ctx, c, "sales", nil))
	assert.NotContains(t, mock.Session.SortOrder, models.BucketSales)

	assert.Error(t, Order(ctx, c, "nope", []string{"A"}))
}

func TestList(t *testing.T) {
	c, _ := newContainer(t)
	ctx := context.Background()
	require.NoError(t, Set(ctx, c, "Zeta", "labor"))
	require.NoError(t, Set(ctx, c, "Alpha", "sales"))
	require.NoError(t, Order(ctx, c, "labor", []string{"Zeta"}))

	var out bytes.Buffer
	require.NoError(t, List(ctx, c, &out))
	assert.Equal(t, "override\tAlpha\tsales\noverride\tZeta\tlabor\norder\tlabor\t[Zeta]\n", out.String())
}
