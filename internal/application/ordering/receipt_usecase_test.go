package ordering_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

type fakeGenerator struct {
	order *entity.Order
	info  ordering.ReceiptInfo
}

func (g *fakeGenerator) GenerateReceiptPDF(_ context.Context, o *entity.Order, info ordering.ReceiptInfo) ([]byte, error) {
	g.order, g.info = o, info
	return []byte("%PDF-fake"), nil
}

func TestDownloadReceiptPDF(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	out, err := uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 2}},
	}, activity.Actor{})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	receipts := ordering.NewReceiptUseCase(store.Repos().Orders, gen, ordering.ReceiptInfo{StoreName: "Café"}, "https://pos.example/track/")

	doc, filename, err := receipts.DownloadReceiptPDF(ctx, out.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "receipt-"+out.OrderNumber+".pdf", filename)
	assert.Equal(t, "https://pos.example/track/"+out.OrderNumber, gen.info.TrackURL)
	require.Len(t, gen.order.Items, 1)
	assert.Equal(t, "Cookie", gen.order.Items[0].ProductName)

	_, _, err = receipts.DownloadReceiptPDF(ctx, "ORD-000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
