package seed

import (
	"context"
	"database/sql"
	"fmt"

	"mebelshop/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedProduct struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Category    string
	Material    string
	Color       string
	Description string
}

type seedCustomer struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

var seedCategories = []string{
	"Диваны", "Кресла", "Столы", "Стулья", "Шкафы", "Кровати", "Матрасы", "Комоды",
}

var seedProducts = []seedProduct{
	{`Диван "Комфорт"`, decimal.NewFromInt(45000), 5, "Диваны", "Ткань, дерево", "Бежевый", "Мягкий удобный диван"},
	{`Диван "Престиж"`, decimal.NewFromInt(65000), 3, "Диваны", "Кожа, дерево", "Коричневый", "Кожаный диван"},
	{`Диван "Маленький"`, decimal.NewFromInt(25000), 7, "Диваны", "Ткань", "Серый", "Компактный диван"},
	{`Кресло "Релакс"`, decimal.NewFromInt(15000), 8, "Кресла", "Ткань, металл", "Серый", "Удобное кресло"},
	{"Кресло-качалка", decimal.NewFromInt(18000), 4, "Кресла", "Дерево", "Натуральный", "Для уюта"},
	{"Стол обеденный", decimal.NewFromInt(25000), 4, "Столы", "Дерево", "Дуб", "Большой стол"},
	{"Стол компьютерный", decimal.NewFromInt(12000), 6, "Столы", "ЛДСП", "Белый", "С полками"},
	{"Стул деревянный", decimal.NewFromInt(5000), 15, "Стулья", "Дерево", "Натуральный", "Удобный стул"},
	{"Стул мягкий", decimal.NewFromInt(7000), 10, "Стулья", "Ткань, металл", "Синий", "С подлокотниками"},
	{"Шкаф-купе", decimal.NewFromInt(55000), 2, "Шкафы", "ЛДСП", "Белый", "Вместительный шкаф"},
	{"Шкаф для одежды", decimal.NewFromInt(35000), 3, "Шкафы", "Дерево", "Венге", "С зеркалом"},
	{"Кровать двуспальная", decimal.NewFromInt(35000), 3, "Кровати", "Дерево", "Венге", "Спальная кровать"},
	{"Кровать односпальная", decimal.NewFromInt(18000), 5, "Кровати", "Металл", "Белый", "Для подростка"},
	{"Матрас ортопедический", decimal.NewFromInt(15000), 8, "Матрасы", "Пена", "Белый", "Жесткий"},
	{"Матрас мягкий", decimal.NewFromInt(10000), 6, "Матрасы", "Пружины", "Бежевый", "Мягкий"},
	{"Комод", decimal.NewFromInt(22000), 4, "Комоды", "Дерево", "Дуб", "6 ящиков"},
}

var seedCustomers = []seedCustomer{
	{"Иван", "Петров", "+7 (999) 123-45-67", "ivan@mail.com"},
	{"Мария", "Иванова", "+7 (999) 765-43-21", "maria@mail.com"},
	{"Петр", "Сидоров", "+7 (999) 555-55-55", "petr@mail.com"},
	{"Анна", "Козлова", "+7 (999) 111-22-33", "anna@mail.com"},
	{"Сергей", "Смирнов", "+7 (999) 444-55-66", "sergey@mail.com"},
	{"Елена", "Попова", "+7 (999) 777-88-99", "elena@mail.com"},
}

// EnsureSeedData fills empty catalog tables with the starter dataset.
// Each table is checked independently so a partially populated database
// is left alone.
func EnsureSeedData(ctx context.Context, db *sql.DB) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "seed"),
		zap.String("method", "EnsureSeedData"),
	)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := seedIfEmpty(ctx, tx, "categories", insertCategories); err != nil {
		return err
	}
	if err := seedIfEmpty(ctx, tx, "products", insertProducts); err != nil {
		return err
	}
	if err := seedIfEmpty(ctx, tx, "customers", insertCustomers); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	log.Info("seed data ensured")
	return nil
}

func seedIfEmpty(ctx context.Context, tx *sql.Tx, table string, insert func(context.Context, *sql.Tx) error) error {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := tx.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if count > 0 {
		return nil
	}
	if err := insert(ctx, tx); err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx) error {
	for _, name := range seedCategories {
		if _, err := tx.ExecContext(ctx, "INSERT INTO categories (name) VALUES ($1)", name); err != nil {
			return err
		}
	}
	return nil
}

func insertProducts(ctx context.Context, tx *sql.Tx) error {
	ids := make(map[string]int64, len(seedCategories))
	rows, err := tx.QueryContext(ctx, "SELECT id, name FROM categories")
	if err != nil {
		return err
	}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		ids[name] = id
	}
	// the cursor must be drained before the inserts reuse the connection
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const query = `
		INSERT INTO products (name, price, stock, category_id, material, color, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, p := range seedProducts {
		categoryID, ok := ids[p.Category]
		if !ok {
			return fmt.Errorf("unknown seed category %q", p.Category)
		}
		_, err := tx.ExecContext(ctx, query,
			p.Name, p.Price, p.Stock, categoryID, p.Material, p.Color, p.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertCustomers(ctx context.Context, tx *sql.Tx) error {
	const query = `
		INSERT INTO customers (first_name, last_name, phone, email)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`
	for _, c := range seedCustomers {
		if _, err := tx.ExecContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Email); err != nil {
			return err
		}
	}
	return nil
}
