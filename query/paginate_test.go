package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usualmarts/sfds-api/models"
)

func TestPaginateAppliesOffsetAndLimit(t *testing.T) {
	gdb := newDryRunDB(t)

	tx := Paginate(gdb.Model(&models.User{}), 20, 5).Find(&[]models.User{})

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.Contains(t, tx.Statement.Vars, 5)
	assert.Contains(t, tx.Statement.Vars, 20)
}

func TestPaginateNormalizesNegatives(t *testing.T) {
	gdb := newDryRunDB(t)

	tx := Paginate(gdb.Model(&models.User{}), -3, -1).Find(&[]models.User{})

	assert.Contains(t, tx.Statement.Vars, DefaultLimit)
	assert.NotContains(t, tx.Statement.Vars, -1)
	assert.NotContains(t, tx.Statement.Vars, -3)
}
