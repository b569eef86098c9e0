package repos

import (
	"database/sql"

	"motodealer/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the tenant's settings; a missing row yields zero-value settings
// so new tenants render with defaults.
func (r *SettingsRepo) Get(dealershipID string) (domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.Get(&s, `
	  SELECT dealership_id, logo_url, hero_image_url, hero_title, hero_subtitle,
	         footer_text, footer_address, footer_phone, footer_email,
	         facebook_url, instagram_url, twitter_url, tiktok_url, youtube_url,
	         main_whatsapp, primary_color, secondary_color
	  FROM site_settings
	  WHERE dealership_id = ?
	`, dealershipID)
	if err == sql.ErrNoRows {
		return domain.SiteSettings{DealershipID: dealershipID}, nil
	}
	return s, err
}

// Upsert writes the whole settings record (overwrite semantics).
func (r *SettingsRepo) Upsert(s domain.SiteSettings) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO site_settings(dealership_id, logo_url, hero_image_url, hero_title, hero_subtitle,
	    footer_text, footer_address, footer_phone, footer_email,
	    facebook_url, instagram_url, twitter_url, tiktok_url, youtube_url,
	    main_whatsapp, primary_color, secondary_color)
	  VALUES(:dealership_id, :logo_url, :hero_image_url, :hero_title, :hero_subtitle,
	    :footer_text, :footer_address, :footer_phone, :footer_email,
	    :facebook_url, :instagram_url, :twitter_url, :tiktok_url, :youtube_url,
	    :main_whatsapp, :primary_color, :secondary_color)
	  ON CONFLICT(dealership_id) DO UPDATE SET
	    logo_url=excluded.logo_url, hero_image_url=excluded.hero_image_url,
	    hero_title=excluded.hero_title, hero_subtitle=excluded.hero_subtitle,
	    footer_text=excluded.footer_text, footer_address=excluded.footer_address,
	    footer_phone=excluded.footer_phone, footer_email=excluded.footer_email,
	    facebook_url=excluded.facebook_url, instagram_url=excluded.instagram_url,
	    twitter_url=excluded.twitter_url, tiktok_url=excluded.tiktok_url,
	    youtube_url=excluded.youtube_url, main_whatsapp=excluded.main_whatsapp,
	    primary_color=excluded.primary_color, secondary_color=excluded.secondary_color
	`, s)
	return err
}
