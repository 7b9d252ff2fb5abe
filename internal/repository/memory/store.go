package memory

import (
	"context"
	"reward_wheel/internal/model"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jonboulle/clockwork"
)

// Store - хранилище в памяти процесса. Повторяет семантику условных
// обновлений Postgres-репозиториев, используется локально и в тестах.
//
// Блокировки двух уровней: rows - блокировка строки аккаунта, берется на
// время записи (в транзакции держится до ее завершения), mu - короткая
// защита самих структур данных. Строка не захватывается под mu
type Store struct {
	mu sync.Mutex

	clock clockwork.Clock

	rows          map[int]*sync.Mutex
	accounts      map[int]model.Account
	byUsername    map[string]int
	byCode        map[string]int
	nextAccountID int

	// журнал спинов хранится по аккаунтам, агрегаты ведутся на записи
	spinLog    map[int][]model.SpinLogEntry
	spinsTotal int
	coinsWon   int64
	nextSpinID int

	// приглашенный участвует не более чем в одном приглашении
	referrals    map[int]model.Referral
	invitees     map[int][]int
	nextReferral int
}

func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock:      clock,
		rows:       make(map[int]*sync.Mutex),
		accounts:   make(map[int]model.Account),
		byUsername: make(map[string]int),
		byCode:     make(map[string]int),
		spinLog:    make(map[int][]model.SpinLogEntry),
		referrals:  make(map[int]model.Referral),
		invitees:   make(map[int][]int),
	}
}

// lockRow - блокировка строки аккаунта. В транзакции строка остается
// захваченной до ее завершения, вне транзакции снимается возвращаемой функцией.
// false - строки нет: мьютекс появляется вместе с аккаунтом и не удаляется
func (s *Store) lockRow(ctx context.Context, id int) (func(), bool) {
	t := txFrom(ctx)
	if t != nil && t.holds(id) {
		return func() {}, true
	}

	s.mu.Lock()
	m, ok := s.rows[id]
	s.mu.Unlock()
	if !ok {
		return func() {}, false
	}

	m.Lock()
	if t != nil {
		t.hold(id, m)
		return func() {}, true
	}
	return m.Unlock, true
}

// readRow - чтение строки под ее блокировкой, грязные чтения исключены.
// В транзакции строка захватывается до конца, как SELECT ... FOR UPDATE
func (s *Store) readRow(ctx context.Context, id int) (model.Account, bool) {
	unlock, ok := s.lockRow(ctx, id)
	defer unlock()
	if !ok {
		return model.Account{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	return a, ok
}

type txKey struct{}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

// tx - журнал отката транзакции. Хранит прообразы затронутых строк и
// идентификаторы добавленных записей, стоимость отката не зависит от размера хранилища
type tx struct {
	s *Store

	held  map[int]*sync.Mutex
	order []int

	// nil - аккаунт создан в этой транзакции
	accounts map[int]*model.Account
	spins    []model.SpinLogEntry
	created  []int
	// прообразы приглашений, помеченных в транзакции
	marked map[int]model.Referral
}

func newTx(s *Store) *tx {
	return &tx{
		s:        s,
		held:     make(map[int]*sync.Mutex),
		accounts: make(map[int]*model.Account),
		marked:   make(map[int]model.Referral),
	}
}

func (t *tx) holds(id int) bool {
	_, ok := t.held[id]
	return ok
}

func (t *tx) hold(id int, m *sync.Mutex) {
	t.held[id] = m
	t.order = append(t.order, id)
}

// Вызовы ниже выполняются под s.mu

func (t *tx) touchAccount(id int, before model.Account) {
	if _, ok := t.accounts[id]; ok {
		return
	}
	t.accounts[id] = &before
}

func (t *tx) createAccount(id int) {
	t.accounts[id] = nil
}

func (t *tx) appendSpin(entry model.SpinLogEntry) {
	t.spins = append(t.spins, entry)
}

func (t *tx) createReferral(inviteeID int) {
	t.created = append(t.created, inviteeID)
}

func (t *tx) markReferral(before model.Referral) {
	if _, ok := t.marked[before.InviteeID]; ok {
		return
	}
	t.marked[before.InviteeID] = before
}

func (t *tx) rollback() {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(t.spins) - 1; i >= 0; i-- {
		s.removeSpin(t.spins[i])
	}

	for _, ref := range t.marked {
		if _, ok := s.referrals[ref.InviteeID]; ok {
			s.referrals[ref.InviteeID] = ref
		}
	}
	for i := len(t.created) - 1; i >= 0; i-- {
		s.removeReferral(t.created[i])
	}

	for id, before := range t.accounts {
		if before != nil {
			s.accounts[id] = *before
			continue
		}

		a := s.accounts[id]
		delete(s.accounts, id)
		if s.byUsername[a.Username] == id {
			delete(s.byUsername, a.Username)
		}
		if s.byCode[a.ReferralCode] == id {
			delete(s.byCode, a.ReferralCode)
		}
	}
}

func (t *tx) release() {
	for i := len(t.order) - 1; i >= 0; i-- {
		t.held[t.order[i]].Unlock()
	}
}

func (s *Store) removeSpin(entry model.SpinLogEntry) {
	log := s.spinLog[entry.AccountID]
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].ID != entry.ID {
			continue
		}
		s.spinLog[entry.AccountID] = append(log[:i], log[i+1:]...)
		s.spinsTotal--
		s.coinsWon -= entry.Coins
		return
	}
}

func (s *Store) removeReferral(inviteeID int) {
	ref, ok := s.referrals[inviteeID]
	if !ok {
		return
	}
	delete(s.referrals, inviteeID)

	list := s.invitees[ref.InviterID]
	for i := range list {
		if list[i] == inviteeID {
			s.invitees[ref.InviterID] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// TxManager - trm.Manager поверх Store: при ошибке изменения откатываются по журналу
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенная транзакция выполняется в рамках внешней
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	t := newTx(m.store)
	defer t.release()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		t.rollback()
		return err
	}

	return nil
}

func (m *TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
