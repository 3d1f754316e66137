package image

const (
	SelectImagesByOwner = `
		SELECT id, owner_id, display_name, storage_key, content_type, width, height, created_at
		FROM images
		WHERE owner_id = $1
		ORDER BY id ASC
	`
	SelectImageByID = `
		SELECT id, owner_id, display_name, storage_key, content_type, width, height, created_at
		FROM images
		WHERE id = $1
	`
	SelectThumbnailsByImageIDs = `
		SELECT id, image_id, owner_id, height, width, storage_key, content_type, created_at
		FROM thumbnails
		WHERE image_id = ANY($1)
		ORDER BY image_id ASC, height ASC
	`
	SelectThumbnailByID = `
		SELECT id, image_id, owner_id, height, width, storage_key, content_type, created_at
		FROM thumbnails
		WHERE id = $1
	`
	InsertImage = `
		INSERT INTO images (owner_id, display_name, storage_key, content_type, width, height)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, owner_id, display_name, storage_key, content_type, width, height, created_at
	`
	InsertThumbnail = `
		INSERT INTO thumbnails (image_id, owner_id, height, width, storage_key, content_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, image_id, owner_id, height, width, storage_key, content_type, created_at
	`
	DeleteThumbnailsByImageID = `DELETE FROM thumbnails WHERE image_id = $1`
	DeleteImageByID           = `DELETE FROM images WHERE id = $1`
)
