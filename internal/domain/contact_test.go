package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySet_Add_Deduplicates(t *testing.T) {
	var s CategorySet
	s = s.Add("Customer")
	s = s.Add("Customer")
	s = s.Add(CategoryOther)

	assert.Equal(t, CategorySet{"Customer", "Other"}, s)
}

func TestCategorySet_Remove_NonMemberIsNoop(t *testing.T) {
	s := CategorySet{"Customer"}
	s = s.Remove("Supplier")
	assert.Equal(t, CategorySet{"Customer"}, s)

	s = s.Remove("Customer")
	assert.Empty(t, s)
}

func TestContact_DisplayName(t *testing.T) {
	c := &Contact{FirstName: "Jane", LastName: "Smith"}
	assert.Equal(t, "Jane Smith", c.DisplayName())

	mononym := &Contact{FirstName: "Cher"}
	assert.Equal(t, "Cher", mononym.DisplayName())
}
