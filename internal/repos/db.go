package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed a demo tenant if the DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Tenants
CREATE TABLE IF NOT EXISTS dealerships(
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  email TEXT DEFAULT '',
  phone TEXT DEFAULT '',
  address TEXT DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_dealerships_slug ON dealerships(slug);

-- Dashboard admins
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  dealership_id TEXT NOT NULL REFERENCES dealerships(id) ON DELETE CASCADE,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Catalog taxonomy
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  dealership_id TEXT NOT NULL REFERENCES dealerships(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT DEFAULT '',
  family TEXT NOT NULL DEFAULT 'general' CHECK (family IN ('motorcycle','general')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_categories_dealership ON categories(dealership_id);

CREATE TABLE IF NOT EXISTS subcategories(
  id TEXT PRIMARY KEY,
  dealership_id TEXT NOT NULL REFERENCES dealerships(id) ON DELETE CASCADE,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_subcategories_category ON subcategories(category_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  dealership_id TEXT NOT NULL REFERENCES dealerships(id) ON DELETE CASCADE,
  category_id TEXT NULL REFERENCES categories(id) ON DELETE SET NULL,
  subcategory_id TEXT NULL REFERENCES subcategories(id) ON DELETE SET NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  brand TEXT NULL,
  model TEXT NULL,
  year INTEGER NULL,
  price NUMERIC NULL CHECK (price IS NULL OR price >= 0),
  description TEXT NULL,
  status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available','sold','reserved')),
  specs_json TEXT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_dealership ON products(dealership_id);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  dealership_id TEXT NOT NULL REFERENCES dealerships(id) ON DELETE CASCADE,
  image_url TEXT NOT NULL,
  is_primary INTEGER NOT NULL DEFAULT 0,
  display_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

-- Team
CREATE TABLE IF NOT EXISTS employees(
  id TEXT PRIMARY KEY,
  dealership_id TEXT NOT NULL REFERENCES dealerships(id) ON DELETE CASCADE,
  full_name TEXT NOT NULL,
  position TEXT DEFAULT '',
  phone TEXT DEFAULT '',
  whatsapp TEXT DEFAULT '',
  email TEXT DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  display_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_employees_dealership ON employees(dealership_id);

-- Branding / contact
CREATE TABLE IF NOT EXISTS site_settings(
  dealership_id TEXT PRIMARY KEY REFERENCES dealerships(id) ON DELETE CASCADE,
  logo_url TEXT DEFAULT '',
  hero_image_url TEXT DEFAULT '',
  hero_title TEXT DEFAULT '',
  hero_subtitle TEXT DEFAULT '',
  footer_text TEXT DEFAULT '',
  footer_address TEXT DEFAULT '',
  footer_phone TEXT DEFAULT '',
  footer_email TEXT DEFAULT '',
  facebook_url TEXT DEFAULT '',
  instagram_url TEXT DEFAULT '',
  twitter_url TEXT DEFAULT '',
  tiktok_url TEXT DEFAULT '',
  youtube_url TEXT DEFAULT '',
  main_whatsapp TEXT DEFAULT '',
  primary_color TEXT DEFAULT '#000000',
  secondary_color TEXT DEFAULT '#666666'
);

-- Session inquiry carts: one serialized JSON blob per session
CREATE TABLE IF NOT EXISTS carts(
  storage_key TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM dealerships`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo dealership/catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO dealerships(id,slug,name,email,phone,address) VALUES
	  ('d-tachira','motostachira','Motos Táchira','ventas@motostachira.test','+58 276 341 2211','Av. Libertador, San Cristóbal')`)

	tx.MustExec(`INSERT INTO site_settings(dealership_id,hero_title,hero_subtitle,main_whatsapp,primary_color) VALUES
	  ('d-tachira','Motos Táchira','Tu concesionario de confianza','+58 414-123-4567','#c0392b')`)

	tx.MustExec(`INSERT INTO categories(id,dealership_id,name,slug,family) VALUES
	  ('cat-motos','d-tachira','Motocicletas','motocicletas','motorcycle'),
	  ('cat-repuestos','d-tachira','Repuestos','repuestos','general'),
	  ('cat-cascos','d-tachira','Cascos y Accesorios','cascos-y-accesorios','general')`)

	tx.MustExec(`INSERT INTO subcategories(id,dealership_id,category_id,name,slug) VALUES
	  ('sub-deportivas','d-tachira','cat-motos','Deportivas','deportivas'),
	  ('sub-enduro','d-tachira','cat-motos','Enduro','enduro')`)

	tx.MustExec(`INSERT INTO products(id,dealership_id,category_id,subcategory_id,name,slug,brand,model,year,price,description,status,specs_json) VALUES
	  ('p-cbr500','d-tachira','cat-motos','sub-deportivas','Honda CBR 500','honda-cbr-500','Honda','CBR 500R',2023,6500,
	   'Deportiva de media cilindrada, único dueño.','available',
	   '{"motor":{"motor":"Bicilíndrico en línea, 4 tiempos","enfriamiento":"Líquido"},"garantia":{"tiempo":"12 meses"}}'),
	  ('p-dt175','d-tachira','cat-motos','sub-enduro','Yamaha DT 175','yamaha-dt-175','Yamaha','DT 175',2019,NULL,
	   'Clásica de campo, precio a convenir.','available',NULL),
	  ('p-casco-ls2','d-tachira','cat-cascos',NULL,'Casco LS2 Rapid','casco-ls2-rapid',NULL,NULL,NULL,85,
	   'Casco integral certificado ECE.','available',NULL)`)

	tx.MustExec(`INSERT INTO product_images(id,product_id,dealership_id,image_url,is_primary,display_order) VALUES
	  ('img-cbr-1','p-cbr500','d-tachira','/media/d-tachira/p-cbr500/main.jpg',1,0),
	  ('img-cbr-2','p-cbr500','d-tachira','/media/d-tachira/p-cbr500/side.jpg',0,1),
	  ('img-dt-1','p-dt175','d-tachira','/media/d-tachira/p-dt175/main.jpg',0,0)`)

	tx.MustExec(`INSERT INTO employees(id,dealership_id,full_name,position,whatsapp,display_order) VALUES
	  ('e-maria','d-tachira','María Contreras','Ventas','+58 414 555 0101',0),
	  ('e-jose','d-tachira','José Roa','Taller','+58 414 555 0102',1)`)

	return tx.Commit()
}

// seedUsers ensures one dashboard admin per seeded tenant (idempotent).
func seedUsers(db *sqlx.DB) error {
	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(id,dealership_id,email,name,password_hash)
		VALUES('u-tachira','d-tachira','admin@motostachira.test','Admin Táchira',?)
		ON CONFLICT(email) DO NOTHING
	`, string(h)); err != nil {
		return err
	}

	return tx.Commit()
}
