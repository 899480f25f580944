package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serializes writers anyway, and a pooled
	// ":memory:" DSN would otherwise open a separate database per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  short_description TEXT NOT NULL DEFAULT '',
  price TEXT,
  regular_price TEXT,
  sale_price TEXT,
  on_sale INTEGER NOT NULL DEFAULT 0,
  stock_status TEXT NOT NULL DEFAULT 'IN_STOCK'
    CHECK (stock_status IN ('IN_STOCK','OUT_OF_STOCK','ON_BACKORDER')),
  stock_quantity INTEGER,
  measurements TEXT NOT NULL DEFAULT '',
  materials TEXT NOT NULL DEFAULT '',
  features TEXT NOT NULL DEFAULT '',
  details TEXT NOT NULL DEFAULT '',
  checkout_url TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug);

CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  alt TEXT NOT NULL DEFAULT '',
  is_primary INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_images_product ON product_images(product_id);

CREATE TABLE IF NOT EXISTS product_categories(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  PRIMARY KEY (product_id, category_id)
);

CREATE TABLE IF NOT EXISTS product_attributes(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  options TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_attributes_product ON product_attributes(product_id);

CREATE TABLE IF NOT EXISTS product_size_inventory(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  size TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  PRIMARY KEY (product_id, size)
);

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL UNIQUE,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  amount TEXT NOT NULL,
  currency TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','processing','settled','expired','invalid')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_invoice ON orders(invoice_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedIfEmpty loads a demo catalog when the database has no categories yet.
// Safe to run on every start.
func SeedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/size inventory")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name,slug,sort_order) VALUES
	  ('cat-outerwear','Outerwear','outerwear',10),
	  ('cat-tops','Tops','tops',20),
	  ('cat-denim','Denim','denim',30),
	  ('cat-accessories','Accessories','accessories',40)`)

	tx.MustExec(`INSERT INTO products(id,name,slug,short_description,price,regular_price,stock_status,materials) VALUES
	  ('prod-jacket-bw','Reversible Jacket - Black/White','reversible-jacket-black-white','Two jackets in one.','289.00','289.00','IN_STOCK','Nylon shell, poly fill'),
	  ('prod-jacket-blue','Reversible Jacket - Blue','reversible-jacket-blue','Cobalt colorway.','289.00','289.00','IN_STOCK','Nylon shell, poly fill'),
	  ('prod-hoodie','Heavyweight Hoodie','heavyweight-hoodie','450gsm fleece.','119.00','119.00','IN_STOCK','100% cotton fleece'),
	  ('prod-logo-tee','Logo Tee','logo-tee','Screen-printed front logo.','45.00','45.00','IN_STOCK','100% ringspun cotton'),
	  ('prod-denim','Straight Leg Denim','straight-leg-denim','14oz raw denim.','165.00','165.00','IN_STOCK','14oz Japanese selvedge'),
	  ('prod-beanie','Waffle Knit Beanie','waffle-knit-beanie','One size fits most.','38.00','38.00','IN_STOCK','Merino blend')`)

	tx.MustExec(`INSERT INTO product_categories(product_id,category_id) VALUES
	  ('prod-jacket-bw','cat-outerwear'),
	  ('prod-jacket-blue','cat-outerwear'),
	  ('prod-hoodie','cat-tops'),
	  ('prod-logo-tee','cat-tops'),
	  ('prod-denim','cat-denim'),
	  ('prod-beanie','cat-accessories')`)

	tx.MustExec(`INSERT INTO product_images(id,product_id,url,alt,is_primary,sort_order) VALUES
	  ('img-jbw-1','prod-jacket-bw','https://cdn.example.net/products/jacket-bw-front.webp','Black/white jacket front',1,0),
	  ('img-jbw-2','prod-jacket-bw','https://cdn.example.net/products/jacket-bw-back.webp','Black/white jacket back',0,1),
	  ('img-hood-1','prod-hoodie','https://cdn.example.net/products/hoodie-front.webp','Hoodie front',1,0),
	  ('img-tee-1','prod-logo-tee','https://cdn.example.net/products/logo-tee.webp','Logo tee',1,0)`)

	tx.MustExec(`INSERT INTO product_attributes(id,product_id,name,options) VALUES
	  ('attr-hood-size','prod-hoodie','Size','["S","M","L","XL","2XL"]'),
	  ('attr-tee-size','prod-logo-tee','Size','["S","M","L","XL"]'),
	  ('attr-tee-color','prod-logo-tee','Color','["Black","White"]'),
	  ('attr-beanie-size','prod-beanie','Size','["One Size"]')`)

	tx.MustExec(`INSERT INTO product_size_inventory(product_id,size,quantity) VALUES
	  ('prod-hoodie','S',4),
	  ('prod-hoodie','M',9),
	  ('prod-hoodie','L',7),
	  ('prod-hoodie','XL',2),
	  ('prod-denim','30"',3),
	  ('prod-denim','32"',6),
	  ('prod-denim','34"',5),
	  ('prod-beanie','One Size',14)`)

	return tx.Commit()
}
