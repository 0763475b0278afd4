package repotest

import (
	"errors"

	"github.com/shopspring/decimal"
)

// errDuplicateOrder tương ứng unique(order_id) trên bảng commissions
var errDuplicateOrder = errors.New("repotest: commission already exists for order")

// sum giả lập COALESCE(SUM(x), 0)::text
type sum struct {
	total decimal.Decimal
}

func newSum() *sum {
	return &sum{total: decimal.Zero}
}

func (s *sum) add(raw string) {
	s.total = s.total.Add(decimal.RequireFromString(raw))
}

func (s *sum) addDecimal(d decimal.Decimal) {
	s.total = s.total.Add(d)
}

func (s *sum) String() string {
	return s.total.String()
}
