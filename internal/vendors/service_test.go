package vendors

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/validate"
)

type memoryVendorRepo struct {
	vendors  map[string]Vendor
	expenses map[string]int
}

func newMemoryVendorRepo() *memoryVendorRepo {
	return &memoryVendorRepo{vendors: make(map[string]Vendor), expenses: make(map[string]int)}
}

func (r *memoryVendorRepo) List(ctx context.Context) ([]Vendor, error) {
	out := []Vendor{}
	for _, v := range r.vendors {
		v.Count = &ExpenseCount{Expenses: r.expenses[v.ID]}
		out = append(out, v)
	}
	return out, nil
}

func (r *memoryVendorRepo) Get(ctx context.Context, id string) (Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return Vendor{}, shared.NotFound("Vendor not found")
	}
	v.Count = &ExpenseCount{Expenses: r.expenses[id]}
	return v, nil
}

func (r *memoryVendorRepo) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	for _, existing := range r.vendors {
		if existing.Name == vendor.Name {
			return Vendor{}, shared.Duplicate("A vendor with this name already exists")
		}
	}
	r.vendors[vendor.ID] = vendor
	vendor.Count = &ExpenseCount{}
	return vendor, nil
}

func (r *memoryVendorRepo) Update(ctx context.Context, vendor Vendor) (Vendor, error) {
	if _, ok := r.vendors[vendor.ID]; !ok {
		return Vendor{}, shared.NotFound("Vendor not found")
	}
	for id, existing := range r.vendors {
		if id != vendor.ID && existing.Name == vendor.Name {
			return Vendor{}, shared.Duplicate("A vendor with this name already exists")
		}
	}
	r.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (r *memoryVendorRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.vendors[id]; !ok {
		return shared.NotFound("Vendor not found")
	}
	delete(r.vendors, id)
	return nil
}

func (r *memoryVendorRepo) CountExpenses(ctx context.Context, id string) (int, error) {
	return r.expenses[id], nil
}

type recordedAudit struct {
	logs []shared.AuditLog
}

func (a *recordedAudit) Record(ctx context.Context, log shared.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func decodeCreateVendor(t *testing.T, payload string) CreateVendorRequest {
	t.Helper()
	var req CreateVendorRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	return req
}

func TestVendorCreateTrimsAndMapsEmptyToNull(t *testing.T) {
	repo := newMemoryVendorRepo()
	svc := NewService(repo, &recordedAudit{}, nil)

	req := decodeCreateVendor(t, `{"name": "  Acme Traders  ", "phone": "  ", "gstNumber": "29ABCDE1234F1Z5"}`)
	v, err := svc.Create(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Acme Traders", v.Name)
	require.Nil(t, v.Phone)
	require.NotNil(t, v.GSTNumber)
	require.Equal(t, "29ABCDE1234F1Z5", *v.GSTNumber)
}

func TestVendorCreateRejectsInvalidFields(t *testing.T) {
	svc := NewService(newMemoryVendorRepo(), &recordedAudit{}, nil)

	req := decodeCreateVendor(t, `{"name": "", "email": "not-an-email", "gstNumber": "0123456789ABCDEF"}`)
	_, err := svc.Create(context.Background(), req, "user-1")

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	messages := map[string]string{}
	for _, fe := range verrs {
		messages[fe.Path] = fe.Message
	}
	require.Equal(t, "Vendor name is required", messages["name"])
	require.Equal(t, "Invalid email format", messages["email"])
	require.Equal(t, "GST number too long", messages["gstNumber"])
}

func TestVendorCreateAcceptsBoundaryGSTAndEmptyEmail(t *testing.T) {
	svc := NewService(newMemoryVendorRepo(), &recordedAudit{}, nil)

	req := decodeCreateVendor(t, `{"name": "Acme", "email": "", "gstNumber": "123456789012345"}`)
	v, err := svc.Create(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.Nil(t, v.Email)
	require.Equal(t, "123456789012345", *v.GSTNumber)
}

func TestVendorGSTLengthCheckedAfterTrimming(t *testing.T) {
	svc := NewService(newMemoryVendorRepo(), &recordedAudit{}, nil)

	req := decodeCreateVendor(t, `{"name": "Acme", "gstNumber": " 123456789012345 "}`)
	v, err := svc.Create(context.Background(), req, "user-1")
	require.NoError(t, err, "surrounding whitespace must not count toward the length cap")
	require.Equal(t, "123456789012345", *v.GSTNumber)

	var upd UpdateVendorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"gstNumber": "0123456789ABCDEF"}`), &upd))
	errs := upd.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "gstNumber", errs[0].Path)
	require.Equal(t, "GST number too long", errs[0].Message)
}

func TestVendorUpdateDistinguishesAbsentAndNull(t *testing.T) {
	repo := newMemoryVendorRepo()
	svc := NewService(repo, &recordedAudit{}, nil)

	created, err := svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme", "phone": "12345", "notes": "keep"}`), "user-1")
	require.NoError(t, err)

	var req UpdateVendorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone": null, "name": "Acme Ltd"}`), &req))
	updated, err := svc.Update(context.Background(), created.ID, req, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Acme Ltd", updated.Name)
	require.Nil(t, updated.Phone)
	require.NotNil(t, updated.Notes)
	require.Equal(t, "keep", *updated.Notes)
}

func TestVendorDeleteGuardReportsExactCount(t *testing.T) {
	repo := newMemoryVendorRepo()
	audit := &recordedAudit{}
	svc := NewService(repo, audit, nil)

	created, err := svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme"}`), "user-1")
	require.NoError(t, err)
	repo.expenses[created.ID] = 3

	err = svc.Delete(context.Background(), created.ID, "user-1")
	require.ErrorIs(t, err, shared.ErrConflict)
	require.Equal(t, "Cannot delete vendor with 3 linked expense(s)", err.Error())
	_, getErr := repo.Get(context.Background(), created.ID)
	require.NoError(t, getErr, "vendor must survive a blocked delete")
}

func TestVendorDeleteRemovesUnreferencedVendor(t *testing.T) {
	repo := newMemoryVendorRepo()
	audit := &recordedAudit{}
	svc := NewService(repo, audit, nil)

	created, err := svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme"}`), "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "user-1"))
	_, err = repo.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Len(t, audit.logs, 2)
	require.Equal(t, "delete", audit.logs[1].Action)
}

type recordedSummaries struct {
	invalidations int
}

func (s *recordedSummaries) Invalidate(ctx context.Context) {
	s.invalidations++
}

func TestVendorMutationsDropCachedSummary(t *testing.T) {
	repo := newMemoryVendorRepo()
	summaries := &recordedSummaries{}
	svc := NewService(repo, &recordedAudit{}, summaries)

	created, err := svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme"}`), "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, summaries.invalidations)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "user-1"))
	require.Equal(t, 2, summaries.invalidations)
}

func TestVendorBlockedDeleteLeavesSummaryCached(t *testing.T) {
	repo := newMemoryVendorRepo()
	summaries := &recordedSummaries{}
	svc := NewService(repo, &recordedAudit{}, summaries)

	created, err := svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme"}`), "user-1")
	require.NoError(t, err)
	repo.expenses[created.ID] = 1

	err = svc.Delete(context.Background(), created.ID, "user-1")
	require.ErrorIs(t, err, shared.ErrConflict)
	require.Equal(t, 1, summaries.invalidations, "a blocked delete changes nothing")
}

func TestVendorDuplicateNameSurfacesAsDuplicate(t *testing.T) {
	svc := NewService(newMemoryVendorRepo(), &recordedAudit{}, nil)

	_, err := svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme"}`), "user-1")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), decodeCreateVendor(t, `{"name": "Acme"}`), "user-1")
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Equal(t, "A vendor with this name already exists", err.Error())
}
