package batch

import (
	"sync"

	"github.com/san-kum/rbdyn/internal/multibody"
)

// DataPool recycles workspaces sized for one model.
type DataPool struct {
	pool  sync.Pool
	model *multibody.Model[float64]
}

func NewDataPool(m *multibody.Model[float64]) *DataPool {
	return &DataPool{
		model: m,
		pool: sync.Pool{
			New: func() any {
				return multibody.NewData(m)
			},
		},
	}
}

func (p *DataPool) Get() *multibody.Data[float64] {
	return p.pool.Get().(*multibody.Data[float64])
}

// Put returns d to the pool; workspaces of another model are dropped.
func (p *DataPool) Put(d *multibody.Data[float64]) {
	if p.model.Check(d) == nil {
		p.pool.Put(d)
	}
}
