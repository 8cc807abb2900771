package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/geobites/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepo_CreateAndDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO users \(email, name, password_hash, created_at\)`).
		WithArgs("a@x.com", "A", "hash", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	u, err := repo.Create(context.Background(), model.User{Email: " a@x.com ", Name: "A", PasswordHash: "hash", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	_, err = repo.Create(context.Background(), model.User{Email: "a@x.com", Name: "A", PasswordHash: "hash", CreatedAt: now})
	assert.ErrorIs(t, err, ErrEmailExists)

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("db down"))
	_, err = repo.Create(context.Background(), model.User{Email: "b@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailExists)
	assert.Contains(t, err.Error(), "db down")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT email, name, password_hash, created_at FROM users WHERE email = \?`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "name", "password_hash", "created_at"}).
			AddRow("a@x.com", "A", "hash", now))
	u, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	mock.ExpectQuery(`FROM users`).WithArgs("none@x.com").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByEmail(context.Background(), "none@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_GetMissingAndUnreadable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartRepo(db)

	mock.ExpectQuery(`SELECT cart_json FROM carts`).WithArgs("a@x.com").WillReturnError(sql.ErrNoRows)
	items, err := repo.Get(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	mock.ExpectQuery(`SELECT cart_json FROM carts`).WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"cart_json"}).AddRow([]byte(`{"broken":`)))
	items, err = repo.Get(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, items)

	mock.ExpectQuery(`SELECT cart_json FROM carts`).WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"cart_json"}).AddRow([]byte(`[{"id":"b1","name":"Classic Burger","price":8,"qty":2}]`)))
	items, err = repo.Get(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []model.CartEntry{{ID: "b1", Name: "Classic Burger", Price: 8, Qty: 2}}, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_PutUpserts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartRepo(db)

	mock.ExpectExec(`INSERT INTO carts \(email, cart_json\) VALUES \(\?, \?\)\s+ON DUPLICATE KEY UPDATE`).
		WithArgs("a@x.com", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Put(context.Background(), "a@x.com", nil))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateCommits(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepo(db)
	o := model.Order{
		ID: "o-1", Email: "a@x.com", CustomerName: "A", Address: "1 Main St",
		Items: []model.OrderItem{
			{ItemID: "b1", Name: "Classic Burger", Price: 8, Qty: 2},
			{ItemID: "dr1", Name: "Coca-Cola", Price: 2, Qty: 1},
		},
		Subtotal: 18, Fee: 3, Total: 21, CreatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs("o-1", "a@x.com", "A", "1 Main St", 18.0, 3.0, 21.0, o.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items \(order_id, item_id, name, price, qty\) VALUES \(\?, \?, \?, \?, \?\),\(\?, \?, \?, \?, \?\)`).
		WithArgs("o-1", "b1", "Classic Burger", 8.0, 2.0, "o-1", "dr1", "Coca-Cola", 2.0, 1.0).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateRollsBackOnItemFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), model.Order{
		ID:    "o-2",
		Items: []model.OrderItem{{ItemID: "x", Name: "X", Price: 1, Qty: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order items")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListAllGroupsItems(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepo(db)
	t1 := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)

	mock.ExpectQuery(`SELECT id, email, customer_name, address, subtotal, fee, total, created_at\s+FROM orders ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "customer_name", "address", "subtotal", "fee", "total", "created_at"}).
			AddRow("new", "b@x.com", "B", "2 Side St", 4.0, 3.0, 7.0, t1).
			AddRow("old", "a@x.com", "A", "1 Main St", 16.0, 3.0, 19.0, t0))
	mock.ExpectQuery(`SELECT order_id, item_id, name, price, qty FROM order_items ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "item_id", "name", "price", "qty"}).
			AddRow("old", "b1", "Classic Burger", 8.0, 2).
			AddRow("new", "a2", "Garlic Bread", 4.0, 1).
			AddRow("gone", "zz", "Orphan", 1.0, 1))

	orders, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "new", orders[0].ID)
	assert.Equal(t, []model.OrderItem{{ItemID: "a2", Name: "Garlic Bread", Price: 4, Qty: 1}}, orders[0].Items)
	assert.Equal(t, []model.OrderItem{{ItemID: "b1", Name: "Classic Burger", Price: 8, Qty: 2}}, orders[1].Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListAllEmptySkipsItems(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepo(db)

	mock.ExpectQuery(`FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "customer_name", "address", "subtotal", "fee", "total", "created_at"}))
	orders, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_DeleteRemovesOnlyMatching(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \?`).WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "m1"))

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \?`).WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_CreateAndList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO contacts \(id, name, subject, email, description, created_at\)`).
		WithArgs("m1", "Ann", "Hi", "ann@x.com", "Hello", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), model.ContactMessage{
		ID: "m1", Name: "Ann", Subject: "Hi", Email: "ann@x.com", Description: "Hello", CreatedAt: now,
	}))

	mock.ExpectQuery(`SELECT id, name, subject, email, description, created_at\s+FROM contacts ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subject", "email", "description", "created_at"}).
			AddRow("m1", "Ann", "Hi", "ann@x.com", nil, now))
	msgs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "", msgs[0].Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBHealth_Ping(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	assert.NoError(t, DBHealth{DB: db}.Ping(context.Background()))

	mock.ExpectQuery(`SELECT 1`).WillReturnError(errors.New("gone"))
	assert.Error(t, DBHealth{DB: db}.Ping(context.Background()))

	s := NewMySQLStores(db)
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Health)
}
