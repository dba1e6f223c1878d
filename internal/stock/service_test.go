package stock_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/stock"
)

func TestStock(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stock Suite")
}

type mockStockRepository struct {
	items       map[int64]*stock.Item
	byReference map[string]*stock.Item
	nextID      int64
}

func newMockStockRepository() *mockStockRepository {
	return &mockStockRepository{
		items:       make(map[int64]*stock.Item),
		byReference: make(map[string]*stock.Item),
		nextID:      1,
	}
}

func (m *mockStockRepository) Create(item *stock.Item) error {
	if _, taken := m.byReference[item.Reference]; taken {
		return stock.ErrReferenceTaken
	}
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	m.byReference[item.Reference] = item
	return nil
}

func (m *mockStockRepository) GetByID(id int64) (*stock.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, stock.ErrNotFound
	}
	return item, nil
}

func (m *mockStockRepository) List() ([]*stock.Item, error) {
	out := make([]*stock.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *mockStockRepository) Update(item *stock.Item) error {
	if existing, taken := m.byReference[item.Reference]; taken && existing.ID != item.ID {
		return stock.ErrReferenceTaken
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockStockRepository) Delete(id int64) error {
	if item, ok := m.items[id]; ok {
		delete(m.byReference, item.Reference)
		delete(m.items, id)
	}
	return nil
}

var _ = Describe("StockService", func() {
	var svc *stock.Service

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = stock.NewService(newMockStockRepository(), logger)
	})

	It("creates a stock line", func() {
		item, err := svc.Create(stock.ItemDTO{Reference: "REF-001", Element: "roulement", Quantity: 12})
		Expect(err).NotTo(HaveOccurred())
		Expect(item.ID).NotTo(BeZero())
	})

	It("rejects a negative quantity", func() {
		_, err := svc.Create(stock.ItemDTO{Reference: "REF-001", Element: "roulement", Quantity: -1})
		Expect(err).To(HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeNegativeQuantity))
	})

	It("accepts a zero quantity", func() {
		_, err := svc.Create(stock.ItemDTO{Reference: "REF-001", Element: "roulement", Quantity: 0})
		Expect(err).NotTo(HaveOccurred())
	})

	It("maps a duplicate reference to a conflict", func() {
		_, err := svc.Create(stock.ItemDTO{Reference: "REF-001", Element: "roulement", Quantity: 1})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Create(stock.ItemDTO{Reference: "REF-001", Element: "joint", Quantity: 2})
		Expect(err).To(HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeReferenceTaken))
	})
})
