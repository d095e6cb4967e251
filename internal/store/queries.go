package store

// SQL query constants organized by entity.
// All SQL lives here — PostgresStore methods reference these constants.

// Tracking item queries.
const (
	queryCreateItem = `
		INSERT INTO tracking_items (
			chat_id, url, title, image_url,
			baseline_price, last_price, threshold_pct, is_active
		) VALUES (
			@chat_id, @url, @title, @image_url,
			@baseline_price, @baseline_price, @threshold_pct, TRUE
		)
		RETURNING id, last_price, is_active, created_at, updated_at`

	itemColumns = `
		id, chat_id, url, title, image_url, cached_image_id,
		baseline_price, last_price, threshold_pct, is_active,
		created_at, updated_at`

	queryGetItem = `
		SELECT ` + itemColumns + `
		FROM tracking_items
		WHERE chat_id = $1 AND id = $2`

	queryListByChat = `
		SELECT ` + itemColumns + `
		FROM tracking_items
		WHERE chat_id = $1
		ORDER BY id DESC`

	queryListActive = `
		SELECT ` + itemColumns + `
		FROM tracking_items
		WHERE is_active
		ORDER BY id`

	queryDeleteItem = `
		DELETE FROM tracking_items
		WHERE chat_id = $1 AND id = $2`

	querySetActive = `
		UPDATE tracking_items
		SET is_active = $3, updated_at = now()
		WHERE chat_id = $1 AND id = $2`

	querySetThreshold = `
		UPDATE tracking_items
		SET threshold_pct = $3, updated_at = now()
		WHERE chat_id = $1 AND id = $2`

	querySetCachedImage = `
		UPDATE tracking_items
		SET cached_image_id = $3, updated_at = now()
		WHERE chat_id = $1 AND id = $2`

	queryUpdateLastPrice = `
		UPDATE tracking_items
		SET last_price = $2, updated_at = now()
		WHERE id = $1`
)

// Sweep run queries.
const (
	queryInsertSweepRun = `
		INSERT INTO sweep_runs (id, status, started_at)
		VALUES ($1, 'running', now())`

	queryCompleteSweepRun = `
		UPDATE sweep_runs
		SET status = @status,
			error = @error,
			items_checked = @items_checked,
			items_updated = @items_updated,
			notifications_sent = @notifications_sent,
			finished_at = now()
		WHERE id = @id`

	queryListSweepRuns = `
		SELECT id, status, items_checked, items_updated, notifications_sent,
			error, started_at, finished_at
		FROM sweep_runs
		ORDER BY started_at DESC
		LIMIT $1`
)
