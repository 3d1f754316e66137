package account_type

const (
	SelectAccountType = `
		SELECT id, name, original_image_link, time_limited_link
		FROM account_types
		WHERE id = $1
	`
	SelectAccountTypes = `
		SELECT id, name, original_image_link, time_limited_link
		FROM account_types
		ORDER BY id
	`
	SelectThumbnailSizes = `
		SELECT ats.account_type_id, ts.size
		FROM account_type_thumbnail_sizes ats
		JOIN thumbnail_sizes ts ON ts.id = ats.thumbnail_size_id
		WHERE ats.account_type_id = ANY($1)
		ORDER BY ats.account_type_id, ts.size
	`
)
