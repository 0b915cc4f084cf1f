package migrations

import (
	"github.com/safenest/trustpipe/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250915_initial_schema",
		Name: "Create moderation, trust, notification and message tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS moderation_events (
					id             UUID PRIMARY KEY,
					user_id        TEXT NOT NULL,
					target_user_id TEXT,
					surface        TEXT NOT NULL,
					snippet        VARCHAR(120),
					allowed        BOOLEAN NOT NULL,
					categories     JSONB,
					severity       TEXT,
					reason         TEXT,
					fallback       BOOLEAN NOT NULL DEFAULT FALSE,
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			// Serves the strike-window recount inside the escalation transaction.
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_events_user_window
				ON moderation_events (user_id, allowed, created_at);
			`).Error; err != nil {
				return err
			}

			// Serves the behavioral detector's sender/target correlation.
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_events_target_user_id
				ON moderation_events (target_user_id);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS trust_profiles (
					user_id           TEXT PRIMARY KEY,
					nick              TEXT,
					tutor_email       TEXT,
					suspended_until   TIMESTAMPTZ,
					infractions_count INTEGER NOT NULL DEFAULT 0,
					strikes_reset_at  TIMESTAMPTZ,
					created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS tutor_notifications (
					id          UUID PRIMARY KEY,
					event_key   TEXT NOT NULL UNIQUE,
					tutor_email TEXT NOT NULL,
					user_id     TEXT NOT NULL,
					type        TEXT NOT NULL,
					status      TEXT NOT NULL,
					payload     JSONB,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					sent_at     TIMESTAMPTZ,
					error       TEXT
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_tutor_notifications_user_id
				ON tutor_notifications (user_id);
			`).Error; err != nil {
				return err
			}

			// Dispatcher scans for queued and failed rows.
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_tutor_notifications_status
				ON tutor_notifications (status, created_at);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS messages (
					id                    UUID PRIMARY KEY,
					conversation_id       TEXT NOT NULL,
					sender_id             TEXT NOT NULL,
					recipient_id          TEXT,
					text                  TEXT NOT NULL,
					status                TEXT NOT NULL,
					is_blocked            BOOLEAN NOT NULL DEFAULT FALSE,
					moderation_reason     TEXT,
					moderation_checked_at TIMESTAMPTZ,
					sent_at               TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_messages_conversation_id
				ON messages (conversation_id, sent_at);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_messages_sender_id
				ON messages (sender_id);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS messages;`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP TABLE IF EXISTS tutor_notifications;`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP TABLE IF EXISTS trust_profiles;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS moderation_events;`).Error
		},
	})
}
