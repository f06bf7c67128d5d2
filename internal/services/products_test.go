package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProducts(fc *fakeClient, rec *fakeAudit, size int) ProductService {
	return NewProductService(fc, NewCatalog(fc, time.Minute), size, rec, logging.Discard())
}

func TestProductService_List_FirstPage(t *testing.T) {
	fc := &fakeClient{
		Products: map[int]*models.ProductPage{
			0: {Products: []models.Product{{ID: 1}, {ID: 2}}, Total: 5},
		},
		Codes: []models.AdminCode{{ID: 1, Code: "A10"}, {ID: 2, Code: "A2"}},
	}
	svc := newProducts(fc, &fakeAudit{}, 2)

	filter := models.ProductFilter{Name: "harina"}
	list, err := svc.List(context.Background(), filter, 1)
	require.NoError(t, err)

	assert.Len(t, list.Products, 2)
	assert.Equal(t, Pager{Page: 1, LastPage: 3, Total: 5, Size: 2}, list.Pager)
	assert.Equal(t, filter, list.Filter)
	require.Len(t, list.AdminCodes, 2)
	assert.Equal(t, "A2", list.AdminCodes[0].Code)
	assert.Equal(t, filter, fc.LastProdQuery)
}

func TestProductService_List_PastLastPageRefetchesLast(t *testing.T) {
	fc := &fakeClient{
		Products: map[int]*models.ProductPage{
			4: {Products: []models.Product{{ID: 5}}, Total: 5},
		},
	}
	svc := newProducts(fc, &fakeAudit{}, 2)

	list, err := svc.List(context.Background(), models.ProductFilter{}, 9)
	require.NoError(t, err)

	assert.Equal(t, []int{16, 4}, fc.ProductCalls)
	assert.Equal(t, 3, list.Pager.Page)
	require.Len(t, list.Products, 1)
	assert.Equal(t, 5, list.Products[0].ID)
}

func TestProductService_List_EmptyResultStaysOnFirstPage(t *testing.T) {
	fc := &fakeClient{Products: map[int]*models.ProductPage{}}
	svc := newProducts(fc, &fakeAudit{}, 25)

	list, err := svc.List(context.Background(), models.ProductFilter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Pager.Page)
	assert.Equal(t, 1, list.Pager.LastPage)
	assert.Equal(t, []int{0}, fc.ProductCalls)
}

func TestProductService_List_CodesFailureIsNotFatal(t *testing.T) {
	fc := &fakeClient{
		Products: map[int]*models.ProductPage{0: {Products: []models.Product{{ID: 1}}, Total: 1}},
		CodesErr: client.ErrUnavailable,
	}
	svc := newProducts(fc, &fakeAudit{}, 25)

	list, err := svc.List(context.Background(), models.ProductFilter{}, 1)
	require.NoError(t, err)
	assert.NotNil(t, list.AdminCodes)
	assert.Empty(t, list.AdminCodes)
}

func TestProductService_List_BackendError(t *testing.T) {
	fc := &fakeClient{ProductsErr: &client.APIError{Status: 500}}
	svc := newProducts(fc, &fakeAudit{}, 25)

	_, err := svc.List(context.Background(), models.ProductFilter{}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestProductService_Detail_HistoryFailureIsNotFatal(t *testing.T) {
	fc := &fakeClient{
		ProductRet: &models.Product{ID: 9, Name: "Harina"},
		Codes:      []models.AdminCode{{ID: 1, Code: "A1"}},
		HistoryErr: errors.New("boom"),
	}
	svc := newProducts(fc, &fakeAudit{}, 25)

	d, err := svc.Detail(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Harina", d.Product.Name)
	assert.Len(t, d.AdminCodes, 1)
	assert.Empty(t, d.PriceHistory)
}

func TestProductService_Detail_ResolvesCategory(t *testing.T) {
	catID := 4
	fc := &fakeClient{
		ProductRet: &models.Product{ID: 9, Name: "Harina", CategoryID: &catID},
		Cats:       []models.Category{{ID: 2, Name: "Lácteos"}, {ID: 4, Name: "Abarrotes"}},
	}
	svc := newProducts(fc, &fakeAudit{}, 25)

	d, err := svc.Detail(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, d.Product.Category)
	assert.Equal(t, "Abarrotes", d.Product.Category.Name)
}

func TestProductService_Detail_NotFound(t *testing.T) {
	fc := &fakeClient{ProductErr: &client.APIError{Status: 404}}
	svc := newProducts(fc, &fakeAudit{}, 25)

	_, err := svc.Detail(context.Background(), 9)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestProductService_Rename(t *testing.T) {
	fc := &fakeClient{}
	rec := &fakeAudit{}
	svc := newProducts(fc, rec, 25)

	err := svc.Rename(signedIn("ana@factorg.cl"), 3, "   ")
	assert.NotEmpty(t, FieldErrors(err)["nombre"])
	assert.Empty(t, fc.Writes)

	require.NoError(t, svc.Rename(signedIn("ana@factorg.cl"), 3, " Harina 25kg "))
	assert.Equal(t, []string{"rename:Harina 25kg"}, fc.Writes)
	require.Len(t, rec.Entries, 1)
	assert.Equal(t, audit.ActionRenameProduct, rec.Entries[0].Action)
	assert.Equal(t, "ana@factorg.cl", rec.Entries[0].Actor)
	assert.Equal(t, "producto:3", rec.Entries[0].Target)
}

func TestProductService_Writes(t *testing.T) {
	fc := &fakeClient{}
	rec := &fakeAudit{}
	svc := newProducts(fc, rec, 25)
	ctx := signedIn("ana@factorg.cl")

	require.Error(t, svc.SetAdditionalPercentage(ctx, 1, "abc"))
	require.Error(t, svc.AssignAdminCode(ctx, 1, ""))
	assert.Empty(t, fc.Writes)

	require.NoError(t, svc.SetAdditionalPercentage(ctx, 1, "12,5"))
	require.NoError(t, svc.SetOthers(ctx, 1, "zz"))
	require.NoError(t, svc.AssignAdminCode(ctx, 1, "4"))
	require.NoError(t, svc.Delete(ctx, 1))

	assert.Equal(t, []string{"percentage", "others", "admin-code", "delete-product"}, fc.Writes)
	assert.Equal(t, []string{
		audit.ActionSetPercentage,
		audit.ActionSetOthers,
		audit.ActionAssignAdminCode,
		audit.ActionDeleteProduct,
	}, rec.actions())
	assert.Equal(t, "12.5", rec.Entries[0].Detail)
	assert.Equal(t, "0", rec.Entries[1].Detail)
}

func TestProductService_WriteErrorSkipsAudit(t *testing.T) {
	fc := &fakeClient{WriteErr: &client.APIError{Status: 403, Detail: "Sin permiso"}}
	rec := &fakeAudit{}
	svc := newProducts(fc, rec, 25)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.Empty(t, rec.Entries)
}

func TestProductService_AuditFailureDoesNotFailWrite(t *testing.T) {
	fc := &fakeClient{}
	svc := newProducts(fc, &fakeAudit{RecordErr: errors.New("db down")}, 25)

	assert.NoError(t, svc.Delete(context.Background(), 1))
}
