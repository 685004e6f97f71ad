package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cafe-pos-api/pkg/money"
)

func TestFormatter_Cents(t *testing.T) {
	f := money.NewFormatter("₱", "en")
	assert.Equal(t, "₱0.00", f.Cents(0))
	assert.Equal(t, "₱1.05", f.Cents(105))
	assert.Equal(t, "₱1,234.50", f.Cents(123450))
	assert.Equal(t, "-₱12.00", f.Cents(-1200))
}

func TestFormatter_Nil(t *testing.T) {
	var f *money.Formatter
	assert.Equal(t, "12.34", f.Cents(1234), "un formateador nil no debe hacer panic")
}
