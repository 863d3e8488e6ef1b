package mutable

type Counter struct {
	value int
}

func (c Counter) Value() int { return c.value }

func (c Counter) WithValue(v int) Counter { return Counter{value: v} }

func (c *Counter) SetValue(v int) { c.value = v }
