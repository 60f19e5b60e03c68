package selling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository/mocks"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

var (
	branchA  = strPtr("filial-a")
	branchB  = strPtr("filial-b")
	sellerV1 = &domain.User{ID: "v1", Name: "Ana", Role: domain.RoleSeller, BranchID: branchA}

	sellerClaims   = &domain.Claims{UserID: "v1", Role: domain.RoleSeller, BranchID: branchA}
	managerClaims  = &domain.Claims{UserID: "g1", Role: domain.RoleManager, BranchID: branchA}
	outsiderClaims = &domain.Claims{UserID: "g2", Role: domain.RoleManager, BranchID: branchB}
	directorClaims = &domain.Claims{UserID: "d1", Role: domain.RoleDirector}
)

type recordingListener struct {
	mu     sync.Mutex
	events []domain.SaleSavedEvent
	err    error
}

func (l *recordingListener) OnSaleSaved(_ context.Context, event domain.SaleSavedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return l.err
}

type fixture struct {
	sales    *mocks.MockSaleRepository
	targets  *mocks.MockTargetRepository
	users    *mocks.MockUserRepository
	listener *recordingListener
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		sales:    mocks.NewMockSaleRepository(ctrl),
		targets:  mocks.NewMockTargetRepository(ctrl),
		users:    mocks.NewMockUserRepository(ctrl),
		listener: &recordingListener{},
	}

	f.service = NewService(f.sales, f.targets, f.users, time.UTC, f.listener)
	f.service.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	return f
}

func assertSaleError(t *testing.T, err error, base error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, base)

	var saleErr *SaleError
	require.True(t, errors.As(err, &saleErr))
	assert.Equal(t, code, saleErr.Code)
}

func TestSave_FormValidationHappensBeforeAnyRepositoryCall(t *testing.T) {
	tests := []struct {
		name string
		form domain.DayForm
		err  error
		code string
	}{
		{name: "Bruto vazio", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "  "}, err: ErrGrossRequired, code: apiErrors.ErrMissingRequiredData},
		{name: "Bruto não numérico", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "abc"}, err: ErrGrossNotNumeric, code: apiErrors.ErrInvalidFormat},
		{name: "Devolução não numérica", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "100", ReturnAmount: "x"}, err: ErrReturnNotNumeric, code: apiErrors.ErrInvalidFormat},
		{name: "Valor negativo", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "-1"}, err: ErrNegativeAmount, code: apiErrors.ErrInvalidRequest},
		{name: "Valor acima da coluna", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "1e20"}, err: ErrAmountOutOfRange, code: apiErrors.ErrInvalidFormat},
		{name: "Valor com três casas decimais", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "100.555"}, err: ErrAmountOutOfRange, code: apiErrors.ErrInvalidFormat},
		{name: "Devolução com três casas decimais", form: domain.DayForm{Date: "2024-03-08", GrossAmount: "100", ReturnAmount: "0.001"}, err: ErrAmountOutOfRange, code: apiErrors.ErrInvalidFormat},
		{name: "Data inválida", form: domain.DayForm{Date: "08/03/2024", GrossAmount: "100"}, err: ErrInvalidDate, code: apiErrors.ErrInvalidFormat},
		{name: "Domingo", form: domain.DayForm{Date: "2024-03-10", GrossAmount: "100"}, err: ErrNotBusinessDay, code: apiErrors.ErrNotBusinessDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			result, err := f.service.Save(context.Background(), sellerClaims, "v1", tt.form, "")

			assert.Nil(t, result)
			assertSaleError(t, err, tt.err, tt.code)
			assert.True(t, IsValidationError(err))
			assert.Empty(t, f.listener.events)
		})
	}
}

func TestSave_ExplicitReadOnlyRejectsWithoutRepositoryCalls(t *testing.T) {
	f := newFixture(t)

	form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
	_, err := f.service.Save(context.Background(), managerClaims, "v1", form, domain.ViewModeReadOnly)

	assertSaleError(t, err, ErrReadOnly, apiErrors.ErrReadOnly)
}

func TestSave_ResolvedReadOnlyNeverUpserts(t *testing.T) {
	tests := []struct {
		name      string
		actor     *domain.Claims
		date      string
		requested domain.ViewMode
	}{
		{name: "Gerente sem pedir edição", actor: managerClaims, date: "2024-03-08"},
		{name: "Diretor sem pedir edição", actor: directorClaims, date: "2024-03-08"},
		{name: "Vendedor em mês passado", actor: sellerClaims, date: "2024-02-08", requested: domain.ViewModeEdit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)

			form := domain.DayForm{Date: tt.date, GrossAmount: "100"}
			_, err := f.service.Save(context.Background(), tt.actor, "v1", form, tt.requested)

			assertSaleError(t, err, ErrReadOnly, apiErrors.ErrReadOnly)
		})
	}
}

func TestSave_AccessDenied(t *testing.T) {
	t.Run("Gerente de outra filial", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)

		form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
		_, err := f.service.Save(context.Background(), outsiderClaims, "v1", form, domain.ViewModeEdit)

		assertSaleError(t, err, ErrAccessDenied, apiErrors.ErrInsufficientPrivilege)
	})

	t.Run("Vendedor lançando para colega", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)

		form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
		other := &domain.Claims{UserID: "v9", Role: domain.RoleSeller, BranchID: branchA}
		_, err := f.service.Save(context.Background(), other, "v1", form, "")

		assertSaleError(t, err, ErrAccessDenied, apiErrors.ErrInsufficientPrivilege)
	})

	t.Run("Vendedor inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v404").Return(nil, nil)

		form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
		_, err := f.service.Save(context.Background(), directorClaims, "v404", form, domain.ViewModeEdit)

		assertSaleError(t, err, ErrSellerNotFound, apiErrors.ErrResourceNotFound)
	})
}

func TestSave_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := date(2024, 3, 8)

	existing := domain.Sale{ID: "s1", SellerID: "v1", Date: date(2024, 3, 1), GrossAmount: decimal.RequireFromString("500"), ReturnAmount: decimal.Zero}
	saved := domain.Sale{ID: "s2", SellerID: "v1", Date: day, GrossAmount: decimal.RequireFromString("1234.56"), ReturnAmount: decimal.RequireFromString("34.56"), EditedBy: strPtr("v1")}
	target := &domain.Target{SellerID: "v1", Month: 3, Year: 2024, TargetAmount: decimal.RequireFromString("10000")}

	gomock.InOrder(
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil),
		f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", day).Return(nil, nil),
		f.sales.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
			assert.Equal(t, "", sale.ID)
			assert.Equal(t, "1234.56", sale.GrossAmount.StringFixed(2))
			assert.Equal(t, "34.56", sale.ReturnAmount.StringFixed(2))
			assert.Nil(t, sale.Notes)
			require.NotNil(t, sale.EditedBy)
			assert.Equal(t, "v1", *sale.EditedBy)
			return &saved, nil
		}).Times(1),
		f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", date(2024, 3, 1), date(2024, 3, 31)).Return([]domain.Sale{existing, saved}, nil),
		f.targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(target, nil),
	)

	form := domain.DayForm{Date: "2024-03-08", GrossAmount: "1234,56", ReturnAmount: "34.56", Notes: "   "}
	result, err := f.service.Save(ctx, sellerClaims, "v1", form, "")

	require.NoError(t, err)
	assert.Equal(t, "s2", result.Sale.ID)
	assert.Equal(t, domain.ViewModeEdit, result.View.Mode)
	assert.Equal(t, 3, result.View.Month)
	assert.Equal(t, 2024, result.View.Year)
	assert.Equal(t, 2, result.View.RecordedDays)
	assert.Equal(t, "1700.00", result.View.TotalNet.StringFixed(2))
	assert.Equal(t, "1700.00", result.Summary.TotalSold.StringFixed(2))
	assert.Equal(t, "17.00", result.Summary.Progress.StringFixed(2))

	require.Len(t, f.listener.events, 1)
	event := f.listener.events[0]
	assert.Equal(t, "v1", event.SellerID)
	assert.Equal(t, "v1", event.ActorID)
	assert.Nil(t, event.Previous)
	assert.Equal(t, "s2", event.Sale.ID)
}

func TestSave_ManagerInEditModeKeepsRecordID(t *testing.T) {
	f := newFixture(t)
	day := date(2024, 3, 8)
	previous := &domain.Sale{ID: "s1", SellerID: "v1", Date: day, GrossAmount: decimal.RequireFromString("100"), ReturnAmount: decimal.Zero}

	f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
	f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", day).Return(previous, nil)
	f.sales.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
		assert.Equal(t, "s1", sale.ID)
		assert.Equal(t, "g1", *sale.EditedBy)
		require.NotNil(t, sale.Notes)
		assert.Equal(t, "correção", *sale.Notes)
		return sale, nil
	})
	f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", gomock.Any(), gomock.Any()).Return(nil, nil)
	f.targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil)

	form := domain.DayForm{Date: "2024-03-08", GrossAmount: "200", Notes: " correção "}
	_, err := f.service.Save(context.Background(), managerClaims, "v1", form, domain.ViewModeEdit)

	require.NoError(t, err)
	require.Len(t, f.listener.events, 1)
	assert.Equal(t, "g1", f.listener.events[0].ActorID)
	assert.Equal(t, previous, f.listener.events[0].Previous)
}

func TestSave_PersistenceFailureDoesNotNotify(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
	f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", gomock.Any()).Return(nil, nil)
	f.sales.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão perdida")).Times(1)

	form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
	_, err := f.service.Save(context.Background(), sellerClaims, "v1", form, "")

	assertSaleError(t, err, ErrPersistence, apiErrors.ErrDatabaseOperation)
	assert.Empty(t, f.listener.events)
}

func TestSave_ReloadFailureStillNotifies(t *testing.T) {
	f := newFixture(t)

	saved := &domain.Sale{ID: "s1", SellerID: "v1", Date: date(2024, 3, 8), GrossAmount: decimal.NewFromInt(100)}

	f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
	f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", gomock.Any()).Return(nil, nil)
	f.sales.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(saved, nil)
	f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão perdida"))

	form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
	result, err := f.service.Save(context.Background(), sellerClaims, "v1", form, "")

	assert.Nil(t, result)
	assertSaleError(t, err, ErrPersistence, apiErrors.ErrDatabaseOperation)
	require.Len(t, f.listener.events, 1)
	assert.Equal(t, "s1", f.listener.events[0].Sale.ID)
	assert.Equal(t, domain.MonthPeriod{Month: 3, Year: 2024}, f.listener.events[0].State.Period)
}

func TestSave_ListenerErrorIsOnlyLogged(t *testing.T) {
	f := newFixture(t)
	f.listener.err = errors.New("auditoria indisponível")

	saved := &domain.Sale{ID: "s1", SellerID: "v1", Date: date(2024, 3, 8), GrossAmount: decimal.NewFromInt(100)}

	f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
	f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", gomock.Any()).Return(nil, nil)
	f.sales.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(saved, nil)
	f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", gomock.Any(), gomock.Any()).Return([]domain.Sale{*saved}, nil)
	f.targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil)

	form := domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}
	result, err := f.service.Save(context.Background(), sellerClaims, "v1", form, "")

	require.NoError(t, err)
	assert.Equal(t, "s1", result.Sale.ID)
	assert.Len(t, f.listener.events, 1)
}

func TestLoadMonth(t *testing.T) {
	t.Run("Gerente abre em modo leitura por padrão", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
		f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", date(2024, 3, 1), date(2024, 3, 31)).Return(nil, nil)
		f.targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil)

		view, err := f.service.LoadMonth(context.Background(), managerClaims, "v1", domain.MonthPeriod{Month: 3, Year: 2024}, "")

		require.NoError(t, err)
		assert.Equal(t, domain.ViewModeReadOnly, view.Mode)
		assert.Equal(t, 4, view.LeadingBlanks)
		for _, cell := range view.Cells {
			assert.False(t, cell.Interactive)
		}
	})

	t.Run("Vendedor edita mês futuro", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
		f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", date(2024, 4, 1), date(2024, 4, 30)).Return(nil, nil)
		f.targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 4, 2024).Return(nil, nil)

		view, err := f.service.LoadMonth(context.Background(), sellerClaims, "v1", domain.MonthPeriod{Month: 4, Year: 2024}, "")

		require.NoError(t, err)
		assert.Equal(t, domain.ViewModeEdit, view.Mode)
		assert.Equal(t, 4, view.Month)
	})

	t.Run("Falha ao carregar vendas", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
		f.sales.EXPECT().ListBySellerAndPeriod(gomock.Any(), "v1", gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.service.LoadMonth(context.Background(), directorClaims, "v1", domain.MonthPeriod{Month: 3, Year: 2024}, "")

		assertSaleError(t, err, ErrPersistence, apiErrors.ErrDatabaseOperation)
	})
}

func TestSelectDay(t *testing.T) {
	day := date(2024, 3, 8)

	t.Run("Dia vazio em modo leitura não abre", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
		f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", day).Return(nil, nil)

		_, err := f.service.SelectDay(context.Background(), managerClaims, "v1", day, "")

		assertSaleError(t, err, ErrDayNotInteractive, apiErrors.ErrNotInteractive)
	})

	t.Run("Dia lançado abre preenchido", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
		f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", day).Return(&domain.Sale{
			SellerID:     "v1",
			Date:         day,
			GrossAmount:  decimal.RequireFromString("500"),
			ReturnAmount: decimal.RequireFromString("50"),
			Notes:        strPtr("chuva"),
		}, nil)

		form, err := f.service.SelectDay(context.Background(), managerClaims, "v1", day, "")

		require.NoError(t, err)
		assert.True(t, form.Recorded)
		assert.Equal(t, "2024-03-08", form.Date)
		assert.Equal(t, "500.00", form.GrossAmount)
		assert.Equal(t, "50.00", form.ReturnAmount)
		assert.Equal(t, "chuva", form.Notes)
	})

	t.Run("Dia vazio em modo edição abre em branco", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil)
		f.sales.EXPECT().GetBySellerAndDate(gomock.Any(), "v1", day).Return(nil, nil)

		form, err := f.service.SelectDay(context.Background(), sellerClaims, "v1", day, "")

		require.NoError(t, err)
		assert.Equal(t, domain.DayForm{Date: "2024-03-08"}, *form)
	})

	t.Run("Domingo", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.SelectDay(context.Background(), sellerClaims, "v1", date(2024, 3, 10), "")

		assertSaleError(t, err, ErrNotBusinessDay, apiErrors.ErrNotBusinessDay)
	})
}

// memorySales guarda as vendas em memória com a mesma chave única do banco
type memorySales struct {
	repository.SaleRepository
	rows map[string]domain.Sale
}

func (m *memorySales) key(sellerID string, d time.Time) string {
	return sellerID + "|" + utils.FormatDate(d)
}

func (m *memorySales) ListBySellerAndPeriod(_ context.Context, sellerID string, from, to time.Time) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, sale := range m.rows {
		if sale.SellerID == sellerID && !sale.Date.Before(from) && !sale.Date.After(to) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (m *memorySales) GetBySellerAndDate(_ context.Context, sellerID string, d time.Time) (*domain.Sale, error) {
	sale, ok := m.rows[m.key(sellerID, d)]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (m *memorySales) Upsert(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	k := m.key(sale.SellerID, sale.Date)
	stored := *sale
	if current, ok := m.rows[k]; ok {
		stored.ID = current.ID
	} else {
		stored.ID = utils.NewID()
	}
	m.rows[k] = stored
	return &stored, nil
}

func TestSave_TwiceOnSameDayKeepsSingleRecord(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mocks.NewMockUserRepository(ctrl)
	targets := mocks.NewMockTargetRepository(ctrl)
	sales := &memorySales{rows: map[string]domain.Sale{}}

	users.EXPECT().GetByID(gomock.Any(), "v1").Return(sellerV1, nil).Times(2)
	targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil).Times(2)

	service := NewService(sales, targets, users, time.UTC)
	service.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	first, err := service.Save(context.Background(), sellerClaims, "v1", domain.DayForm{Date: "2024-03-08", GrossAmount: "100"}, "")
	require.NoError(t, err)

	second, err := service.Save(context.Background(), sellerClaims, "v1", domain.DayForm{Date: "2024-03-08", GrossAmount: "250", ReturnAmount: "50"}, "")
	require.NoError(t, err)

	assert.Len(t, sales.rows, 1)
	assert.Equal(t, first.Sale.ID, second.Sale.ID)
	assert.Equal(t, 1, second.View.RecordedDays)
	assert.Equal(t, "200.00", second.View.TotalNet.StringFixed(2))
}
