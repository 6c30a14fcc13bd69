package memstore

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	invdomain "github.com/tair/production-costing/internal/inventory/domain"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	purdomain "github.com/tair/production-costing/internal/purchasing/domain"
	salesdomain "github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/pkg/apperr"
)

type stockRepo struct{ s *Store }

func (r stockRepo) FindByProduct(ctx context.Context, product string) (*invdomain.StockItem, error) {
	var out *invdomain.StockItem
	err := r.s.do(ctx, func(st *state) error {
		item, ok := st.stock[product]
		if !ok {
			return apperr.New(apperr.ErrProductNotFound, "product %q has no stock record", product)
		}
		out = &item
		return nil
	})
	return out, err
}

// FindByProductForUpdate needs no extra locking: writers already hold the
// store lock for the whole transaction.
func (r stockRepo) FindByProductForUpdate(ctx context.Context, product string) (*invdomain.StockItem, error) {
	return r.FindByProduct(ctx, product)
}

func (r stockRepo) CreateIfAbsent(ctx context.Context, item *invdomain.StockItem) (bool, error) {
	created := false
	err := r.s.do(ctx, func(st *state) error {
		if _, ok := st.stock[item.ProductName]; ok {
			return nil
		}
		now := r.s.now()
		item.ID = st.nextID("stock_items")
		item.CreatedAt, item.UpdatedAt = now, now
		st.stock[item.ProductName] = *item
		created = true
		return nil
	})
	return created, err
}

func (r stockRepo) Save(ctx context.Context, item *invdomain.StockItem) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.stock[item.ProductName]; !ok {
			return apperr.New(apperr.ErrProductNotFound, "product %q has no stock record", item.ProductName)
		}
		item.UpdatedAt = r.s.now()
		st.stock[item.ProductName] = *item
		return nil
	})
}

func (r stockRepo) ListInStock(ctx context.Context) ([]invdomain.StockItem, error) {
	var out []invdomain.StockItem
	err := r.s.do(ctx, func(st *state) error {
		for _, item := range st.stock {
			if item.QuantityBase.IsPositive() {
				out = append(out, item)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, err
}

type subproductRepo struct{ s *Store }

func (r subproductRepo) Create(ctx context.Context, sub *proddomain.Subproduct) error {
	return r.s.do(ctx, func(st *state) error {
		for _, existing := range st.subproducts {
			if existing.Name == sub.Name {
				return apperr.New(apperr.ErrAlreadyExists, "subproduct %q already exists", sub.Name)
			}
		}
		sub.ID = st.nextID("subproducts")
		sub.CreatedAt = r.s.now()
		for i := range sub.Ingredients {
			sub.Ingredients[i].ID = st.nextID("subproduct_ingredients")
			sub.Ingredients[i].SubproductID = sub.ID
		}
		st.subproducts[sub.ID] = cloneSubproduct(*sub)
		return nil
	})
}

func (r subproductRepo) FindByID(ctx context.Context, id uint) (*proddomain.Subproduct, error) {
	var out *proddomain.Subproduct
	err := r.s.do(ctx, func(st *state) error {
		sub, ok := st.subproducts[id]
		if !ok {
			return apperr.New(apperr.ErrSubproductNotFound, "subproduct %d does not exist", id)
		}
		sub = cloneSubproduct(sub)
		out = &sub
		return nil
	})
	return out, err
}

func (r subproductRepo) List(ctx context.Context) ([]proddomain.Subproduct, error) {
	var out []proddomain.Subproduct
	err := r.s.do(ctx, func(st *state) error {
		for _, sub := range st.subproducts {
			out = append(out, cloneSubproduct(sub))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r subproductRepo) Delete(ctx context.Context, id uint) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.subproducts[id]; !ok {
			return apperr.New(apperr.ErrSubproductNotFound, "subproduct %d does not exist", id)
		}
		for _, fp := range st.finals {
			if fp.SubproductID == id {
				return apperr.New(apperr.ErrSubproductInUse, "subproduct %d is used by final product %q", id, fp.Name)
			}
		}
		delete(st.subproducts, id)
		return nil
	})
}

type finalProductRepo struct{ s *Store }

func (r finalProductRepo) Create(ctx context.Context, fp *proddomain.FinalProduct) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.subproducts[fp.SubproductID]; !ok {
			return apperr.New(apperr.ErrSubproductNotFound, "subproduct %d does not exist", fp.SubproductID)
		}
		for _, existing := range st.finals {
			if existing.Name == fp.Name {
				return apperr.New(apperr.ErrAlreadyExists, "final product %q already exists", fp.Name)
			}
		}
		now := r.s.now()
		fp.ID = st.nextID("final_products")
		fp.CreatedAt, fp.UpdatedAt = now, now
		st.finals[fp.ID] = *fp
		return nil
	})
}

func withCost(st *state, fp proddomain.FinalProduct) proddomain.FinalProductCost {
	sub := st.subproducts[fp.SubproductID]
	return proddomain.FinalProductCost{
		FinalProduct:   fp,
		SubproductName: sub.Name,
		SubproductCost: sub.TotalCost,
	}
}

func (r finalProductRepo) FindWithCost(ctx context.Context, id uint) (*proddomain.FinalProductCost, error) {
	var out *proddomain.FinalProductCost
	err := r.s.do(ctx, func(st *state) error {
		fp, ok := st.finals[id]
		if !ok {
			return apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", id)
		}
		c := withCost(st, fp)
		out = &c
		return nil
	})
	return out, err
}

func (r finalProductRepo) ListWithCost(ctx context.Context) ([]proddomain.FinalProductCost, error) {
	var out []proddomain.FinalProductCost
	err := r.s.do(ctx, func(st *state) error {
		for _, fp := range st.finals {
			out = append(out, withCost(st, fp))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r finalProductRepo) UpdateSalePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	return r.s.do(ctx, func(st *state) error {
		fp, ok := st.finals[id]
		if !ok {
			return apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", id)
		}
		fp.SalePrice = decimal.NewNullDecimal(price)
		fp.UpdatedAt = r.s.now()
		st.finals[id] = fp
		return nil
	})
}

func (r finalProductRepo) CountBySubproduct(ctx context.Context, subproductID uint) (int64, error) {
	var n int64
	err := r.s.do(ctx, func(st *state) error {
		for _, fp := range st.finals {
			if fp.SubproductID == subproductID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r finalProductRepo) Delete(ctx context.Context, id uint) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.finals[id]; !ok {
			return apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", id)
		}
		for _, sale := range st.sales {
			if sale.FinalProductID == id {
				return apperr.New(apperr.ErrFinalProductInUse, "final product %d has recorded sales", id)
			}
		}
		delete(st.finals, id)
		return nil
	})
}

type purchaseRepo struct{ s *Store }

func (r purchaseRepo) Create(ctx context.Context, p *purdomain.Purchase) error {
	return r.s.do(ctx, func(st *state) error {
		if p.EventID != nil {
			for _, existing := range st.purchases {
				if existing.EventID != nil && *existing.EventID == *p.EventID {
					return apperr.New(apperr.ErrAlreadyExists, "purchase event %s already recorded", *p.EventID)
				}
			}
		}
		p.ID = st.nextID("purchases")
		p.CreatedAt = r.s.now()
		st.purchases = append(st.purchases, *p)
		return nil
	})
}

func (r purchaseRepo) List(ctx context.Context, limit, offset int) ([]purdomain.Purchase, error) {
	var out []purdomain.Purchase
	err := r.s.do(ctx, func(st *state) error {
		for i := len(st.purchases) - 1; i >= 0; i-- {
			out = append(out, st.purchases[i])
		}
		return nil
	})
	return page(out, limit, offset), err
}

type clientRepo struct{ s *Store }

func (r clientRepo) Create(ctx context.Context, c *salesdomain.Client) error {
	return r.s.do(ctx, func(st *state) error {
		for _, existing := range st.clients {
			if existing.Name == c.Name {
				return apperr.New(apperr.ErrAlreadyExists, "client %q already exists", c.Name)
			}
		}
		now := r.s.now()
		c.ID = st.nextID("clients")
		c.CreatedAt, c.UpdatedAt = now, now
		st.clients[c.ID] = *c
		return nil
	})
}

func (r clientRepo) FindByID(ctx context.Context, id uint) (*salesdomain.Client, error) {
	var out *salesdomain.Client
	err := r.s.do(ctx, func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return apperr.New(apperr.ErrClientNotFound, "client %d does not exist", id)
		}
		out = &c
		return nil
	})
	return out, err
}

func (r clientRepo) List(ctx context.Context, onlyActive bool) ([]salesdomain.Client, error) {
	var out []salesdomain.Client
	err := r.s.do(ctx, func(st *state) error {
		for _, c := range st.clients {
			if onlyActive && !c.Active {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r clientRepo) SetActive(ctx context.Context, id uint, active bool) error {
	return r.s.do(ctx, func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return apperr.New(apperr.ErrClientNotFound, "client %d does not exist", id)
		}
		c.Active = active
		c.UpdatedAt = r.s.now()
		st.clients[id] = c
		return nil
	})
}

type saleRepo struct{ s *Store }

func (r saleRepo) Create(ctx context.Context, sale *salesdomain.Sale) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.clients[sale.ClientID]; !ok {
			return apperr.New(apperr.ErrClientNotFound, "client %d does not exist", sale.ClientID)
		}
		if _, ok := st.finals[sale.FinalProductID]; !ok {
			return apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", sale.FinalProductID)
		}
		for _, existing := range st.sales {
			if existing.ReceiptNumber == sale.ReceiptNumber {
				return apperr.New(apperr.ErrAlreadyExists, "receipt %s already recorded", sale.ReceiptNumber)
			}
		}
		sale.ID = st.nextID("sales")
		sale.CreatedAt = r.s.now()
		st.sales = append(st.sales, *sale)
		return nil
	})
}

func (r saleRepo) List(ctx context.Context, limit, offset int) ([]salesdomain.SaleRecord, error) {
	var out []salesdomain.SaleRecord
	err := r.s.do(ctx, func(st *state) error {
		for i := len(st.sales) - 1; i >= 0; i-- {
			sale := st.sales[i]
			out = append(out, salesdomain.SaleRecord{
				Sale:        sale,
				ClientName:  st.clients[sale.ClientID].Name,
				ProductName: st.finals[sale.FinalProductID].Name,
			})
		}
		return nil
	})
	return page(out, limit, offset), err
}

func (r saleRepo) CountByFinalProduct(ctx context.Context, finalProductID uint) (int64, error) {
	var n int64
	err := r.s.do(ctx, func(st *state) error {
		for _, sale := range st.sales {
			if sale.FinalProductID == finalProductID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
