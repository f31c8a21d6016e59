package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utafrali/finsearch/internal/domain"
)

const productColumns = `p.id, p.name, COALESCE(p.description, ''), COALESCE(p.description_long, ''), p.active, p.tax_rate, COALESCE(p.supplier, ''), p.created_at`

// CatalogRepository implements repository.CatalogStore using PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// CountActiveProducts returns the number of active products.
func (r *CatalogRepository) CountActiveProducts(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE active`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return total, nil
}

// FetchActiveProducts returns a page of active products ordered by ID, with
// variants, prices, and categories attached. A count of zero or less means
// no limit.
func (r *CatalogRepository) FetchActiveProducts(ctx context.Context, start, count int) ([]domain.CatalogProduct, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		WHERE p.active
		ORDER BY p.id
		OFFSET $1`, productColumns)
	args := []any{start}

	if count > 0 {
		query += " LIMIT $2"
		args = append(args, count)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch active products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	return r.loadAssociations(ctx, products)
}

// FetchProductsByIdentifier returns active products whose ID, order number,
// EAN, or supplier number matches the given identifier.
func (r *CatalogRepository) FetchProductsByIdentifier(ctx context.Context, identifier string) ([]domain.CatalogProduct, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM products p
		JOIN variants v ON v.product_id = p.id
		WHERE p.active
		  AND (CAST(p.id AS TEXT) = $1 OR v.number = $1 OR v.ean = $1 OR v.supplier_number = $1)
		ORDER BY p.id`, productColumns)

	rows, err := r.pool.Query(ctx, query, identifier)
	if err != nil {
		return nil, fmt.Errorf("fetch products by identifier: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	return r.loadAssociations(ctx, products)
}

// CustomerGroups returns all customer groups of the shop.
func (r *CatalogRepository) CustomerGroups(ctx context.Context) ([]domain.CustomerGroup, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, name, gross_prices FROM customer_groups ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("fetch customer groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.CustomerGroup
	for rows.Next() {
		var g domain.CustomerGroup
		if err := rows.Scan(&g.Key, &g.Name, &g.GrossPrices); err != nil {
			return nil, fmt.Errorf("scan customer group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer groups: %w", err)
	}
	return groups, nil
}

// SalesFrequencies returns the total quantity sold per product ID in a
// single aggregate query.
func (r *CatalogRepository) SalesFrequencies(ctx context.Context) (map[int64]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, COALESCE(SUM(quantity), 0)::int
		FROM order_items
		GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("fetch sales frequencies: %w", err)
	}
	defer rows.Close()

	frequencies := make(map[int64]int)
	for rows.Next() {
		var productID int64
		var total int
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, fmt.Errorf("scan sales frequency: %w", err)
		}
		frequencies[productID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales frequencies: %w", err)
	}
	return frequencies, nil
}

// SearchActive runs a native catalog search. Conditions compose as AND-ed
// restrictions; unknown condition kinds fail before the query is issued.
func (r *CatalogRepository) SearchActive(ctx context.Context, criteria domain.Criteria) ([]domain.CatalogProduct, int, error) {
	var (
		conditions = []string{"p.active"}
		joins      []string
		args       []any
		argIndex   = 1
	)

	for _, cond := range criteria.Conditions {
		switch c := cond.(type) {
		case domain.SearchTermCondition:
			conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description_long ILIKE $%d)", argIndex, argIndex))
			args = append(args, "%"+c.Term+"%")
			argIndex++
		case domain.CategoryCondition:
			conditions = append(conditions, fmt.Sprintf(`EXISTS (
				SELECT 1 FROM product_categories pc
				JOIN categories c ON c.id = pc.category_id
				WHERE pc.product_id = p.id AND c.active AND (c.id = $%d OR c.path LIKE $%d))`, argIndex, argIndex+1))
			args = append(args, c.CategoryID, fmt.Sprintf("%%|%d|%%", c.CategoryID))
			argIndex += 2
		case domain.VendorCondition:
			conditions = append(conditions, fmt.Sprintf("p.supplier = $%d", argIndex))
			args = append(args, c.Vendor)
			argIndex++
		case domain.PriceCondition:
			priceCond := fmt.Sprintf("vp.amount >= $%d", argIndex)
			args = append(args, c.Min)
			argIndex++
			if c.Max > 0 {
				priceCond += fmt.Sprintf(" AND vp.amount <= $%d", argIndex)
				args = append(args, c.Max)
				argIndex++
			}
			conditions = append(conditions, fmt.Sprintf(`EXISTS (
				SELECT 1 FROM variants v
				JOIN variant_prices vp ON vp.variant_id = v.id
				WHERE v.product_id = p.id AND %s)`, priceCond))
		default:
			return nil, 0, &domain.UnsupportedConditionError{Kind: cond.Kind()}
		}
	}

	orderBy := "p.id"
	if len(criteria.Sortings) > 0 {
		var clauses []string
		for _, sort := range criteria.Sortings {
			switch s := sort.(type) {
			case domain.PopularitySorting:
				joins = append(joins, `
					LEFT JOIN (
						SELECT product_id, SUM(quantity) AS total
						FROM order_items GROUP BY product_id
					) sales ON sales.product_id = p.id`)
				clauses = append(clauses, "sales.total "+dirSQL(s.Direction)+" NULLS LAST")
			case domain.ReleaseDateSorting:
				clauses = append(clauses, "p.created_at "+dirSQL(s.Direction))
			case domain.PriceSorting:
				joins = append(joins, `
					LEFT JOIN (
						SELECT v.product_id, MIN(vp.amount) AS min_amount
						FROM variants v JOIN variant_prices vp ON vp.variant_id = v.id
						GROUP BY v.product_id
					) price_agg ON price_agg.product_id = p.id`)
				clauses = append(clauses, "price_agg.min_amount "+dirSQL(s.Direction)+" NULLS LAST")
			case domain.ProductNameSorting:
				clauses = append(clauses, "p.name "+dirSQL(s.Direction))
			default:
				return nil, 0, &domain.UnsupportedConditionError{Kind: sort.Kind()}
			}
		}
		orderBy = strings.Join(clauses, ", ")
	}

	// count(*) OVER() avoids a second round trip for the total.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products p
		%s
		WHERE %s
		ORDER BY %s
		OFFSET $%d`,
		productColumns,
		strings.Join(joins, "\n"),
		strings.Join(conditions, " AND "),
		orderBy,
		argIndex,
	)
	args = append(args, criteria.Offset)
	argIndex++

	if criteria.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, criteria.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var (
		products []domain.CatalogProduct
		total    int
	)
	for rows.Next() {
		var p domain.CatalogProduct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.DescriptionLong,
			&p.Active, &p.TaxRate, &p.Supplier, &p.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	products, err = r.loadAssociations(ctx, products)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func dirSQL(d domain.SortDirection) string {
	if d == domain.SortDescending {
		return "DESC"
	}
	return "ASC"
}

type productRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProducts(rows productRows) ([]domain.CatalogProduct, error) {
	var products []domain.CatalogProduct
	for rows.Next() {
		var p domain.CatalogProduct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.DescriptionLong,
			&p.Active, &p.TaxRate, &p.Supplier, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// loadAssociations attaches variants, per-group prices, and categories to
// the given products in three batch queries.
func (r *CatalogRepository) loadAssociations(ctx context.Context, products []domain.CatalogProduct) ([]domain.CatalogProduct, error) {
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	variantIDs, err := r.loadVariants(ctx, ids, products, index)
	if err != nil {
		return nil, err
	}
	if err := r.loadPrices(ctx, ids, products, index, variantIDs); err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, ids, products, index); err != nil {
		return nil, err
	}

	// Resolve main variant pointers after all variants are in place.
	for i := range products {
		for j := range products[i].Variants {
			if products[i].Variants[j].IsMain {
				products[i].MainVariant = &products[i].Variants[j]
				break
			}
		}
	}

	return products, nil
}

func (r *CatalogRepository) loadVariants(ctx context.Context, ids []int64, products []domain.CatalogProduct, index map[int64]int) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.product_id, v.number, COALESCE(v.ean, ''), COALESCE(v.supplier_number, ''),
			   v.active, v.in_stock, v.last_stock, v.min_purchase, v.is_main
		FROM variants v
		WHERE v.product_id = ANY($1)
		ORDER BY v.product_id, v.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch variants: %w", err)
	}
	defer rows.Close()

	variantProduct := make(map[int64]int64)
	for rows.Next() {
		var v domain.Variant
		var productID int64
		if err := rows.Scan(
			&v.ID, &productID, &v.Number, &v.EAN, &v.SupplierNumber,
			&v.Active, &v.InStock, &v.LastStock, &v.MinPurchase, &v.IsMain,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variantProduct[v.ID] = productID
		if i, ok := index[productID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return variantProduct, nil
}

func (r *CatalogRepository) loadPrices(ctx context.Context, ids []int64, products []domain.CatalogProduct, index map[int64]int, variantProduct map[int64]int64) error {
	rows, err := r.pool.Query(ctx, `
		SELECT vp.variant_id, vp.customer_group_key, vp.amount
		FROM variant_prices vp
		JOIN variants v ON v.id = vp.variant_id
		WHERE v.product_id = ANY($1)
		ORDER BY vp.variant_id`, ids)
	if err != nil {
		return fmt.Errorf("fetch variant prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variantID int64
		var price domain.Price
		if err := rows.Scan(&variantID, &price.CustomerGroupKey, &price.Amount); err != nil {
			return fmt.Errorf("scan variant price: %w", err)
		}
		productID, ok := variantProduct[variantID]
		if !ok {
			continue
		}
		i := index[productID]
		for j := range products[i].Variants {
			if products[i].Variants[j].ID == variantID {
				products[i].Variants[j].Prices = append(products[i].Variants[j].Prices, price)
				break
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate variant prices: %w", err)
	}
	return nil
}

func (r *CatalogRepository) loadCategories(ctx context.Context, ids []int64, products []domain.CatalogProduct, index map[int64]int) error {
	rows, err := r.pool.Query(ctx, `
		SELECT pc.product_id, c.id, c.name, c.active, c.path
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY pc.product_id, c.id`, ids)
	if err != nil {
		return fmt.Errorf("fetch categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var c domain.Category
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.Active, &c.Path); err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Categories = append(products[i].Categories, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate categories: %w", err)
	}
	return nil
}
