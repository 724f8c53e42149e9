package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	submitters, err := store.ListDistinctSubmitters(ctx)
	require.NoError(t, err)
	assert.Empty(t, submitters)

	id1, err := store.AppendEmployee(ctx, sampleEmployee("a", "+998901112233", "Aziza"))
	require.NoError(t, err)
	again, err := store.AppendEmployee(ctx, sampleEmployee("a", "+998901112233", "Aziza"))
	require.NoError(t, err)
	assert.Equal(t, id1, again)

	_, err = store.AppendStudent(ctx, sampleStudent("b", "+998935556677", "Bobur"))
	require.NoError(t, err)
	_, err = store.AppendStudent(ctx, sampleStudent("c", "+998901112233", "Ali"))
	require.NoError(t, err)

	submitters, err = store.ListDistinctSubmitters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Submitter{
		{Phone: "+998901112233", DisplayName: "Aziza"},
		{Phone: "+998935556677", DisplayName: "Bobur"},
	}, submitters)

	employees, students, err := store.FindByPhone(ctx, "+998901112233")
	require.NoError(t, err)
	assert.Len(t, employees, 1)
	require.Len(t, students, 1)
	assert.Equal(t, "Ali", students[0].FullName)
}
