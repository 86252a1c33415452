//go:build !integration
// +build !integration

package http_common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type HTTPCommonUnitSuite struct {
	suite.Suite
}

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func (s *HTTPCommonUnitSuite) TestPaginate(t provider.T) {
	t.Run("Should slice first page with next link only", func(t provider.T) {
		resp := Paginate(sequence(25), 1, 10)

		assert.Equal(t, 25, resp.Count)
		assert.Equal(t, sequence(10), resp.Results)
		assert.Nil(t, resp.Previous)
		if assert.NotNil(t, resp.Next) {
			assert.Equal(t, 2, *resp.Next)
		}
	})

	t.Run("Should slice middle page with both links", func(t provider.T) {
		resp := Paginate(sequence(25), 2, 10)

		assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, resp.Results)
		if assert.NotNil(t, resp.Previous) {
			assert.Equal(t, 1, *resp.Previous)
		}
		if assert.NotNil(t, resp.Next) {
			assert.Equal(t, 3, *resp.Next)
		}
	})

	t.Run("Should slice short last page without next link", func(t provider.T) {
		resp := Paginate(sequence(25), 3, 10)

		assert.Equal(t, []int{21, 22, 23, 24, 25}, resp.Results)
		assert.Nil(t, resp.Next)
		if assert.NotNil(t, resp.Previous) {
			assert.Equal(t, 2, *resp.Previous)
		}
	})

	t.Run("Should return empty results past the end", func(t provider.T) {
		resp := Paginate(sequence(5), 4, 10)

		assert.Equal(t, 5, resp.Count)
		assert.Empty(t, resp.Results)
		assert.Nil(t, resp.Next)
	})

	t.Run("Should handle empty input", func(t provider.T) {
		resp := Paginate([]int{}, 1, 10)

		assert.Equal(t, 0, resp.Count)
		assert.Empty(t, resp.Results)
		assert.Nil(t, resp.Next)
		assert.Nil(t, resp.Previous)
	})

	t.Run("Should fall back to default page size", func(t provider.T) {
		resp := Paginate(sequence(15), 1, 0)

		assert.Len(t, resp.Results, DefaultPageSize)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HTTPCommonUnitSuite))
}
