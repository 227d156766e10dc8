package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

// Schema for the managed SQL instance backend. The DSN must carry
// parseTime=true so TIMESTAMP columns scan into time.Time.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS channels (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		owner VARCHAR(128) NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_channel_owner (owner)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS videos (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		channel VARCHAR(64) NOT NULL,
		author VARCHAR(128) NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		tags TEXT NOT NULL,
		content_type VARCHAR(128) NOT NULL,
		size BIGINT NOT NULL,
		status VARCHAR(32) NOT NULL,
		asset_id VARCHAR(128) NOT NULL DEFAULT '',
		playback_id VARCHAR(128) NOT NULL DEFAULT '',
		duration DOUBLE NOT NULL DEFAULT 0,
		upload TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_video_author (author),
		INDEX idx_video_channel (channel)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the backing tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const videoColumns = "id, channel, author, title, description, tags, content_type, size, status, asset_id, playback_id, duration, upload, created_at, updated_at"

type SQLVideoRepository struct {
	db *sql.DB
}

func NewSQLVideoRepository(db *sql.DB) *SQLVideoRepository {
	return &SQLVideoRepository{db: db}
}

// Get the video by the video ID.
func (r *SQLVideoRepository) GetById(ctx context.Context, id string) (*entity.Video, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+videoColumns+" FROM videos WHERE id = ?", id)
	video, err := scanVideo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return video, nil
}

// List videos authored by the given user, newest first.
func (r *SQLVideoRepository) ListByAuthor(ctx context.Context, author string, limit int) ([]*entity.Video, error) {
	return r.list(ctx, "author", author, limit)
}

// List videos published to the given channel, newest first.
func (r *SQLVideoRepository) ListByChannel(ctx context.Context, channel string, limit int) ([]*entity.Video, error) {
	return r.list(ctx, "channel", channel, limit)
}

func (r *SQLVideoRepository) list(ctx context.Context, column, value string, limit int) ([]*entity.Video, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM videos WHERE "+column+" = ? ORDER BY created_at DESC LIMIT ?",
		value, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var videos []*entity.Video
	for rows.Next() {
		video, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// Save an entity to the persistence.
func (r *SQLVideoRepository) Save(ctx context.Context, video *entity.Video) error {
	upload, err := marshalUpload(video.Upload)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO videos (id, channel, author, title, description, tags, content_type, size, status, asset_id, playback_id, duration, upload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			description = VALUES(description),
			tags = VALUES(tags),
			status = VALUES(status),
			asset_id = VALUES(asset_id),
			playback_id = VALUES(playback_id),
			duration = VALUES(duration),
			upload = VALUES(upload),
			updated_at = VALUES(updated_at)
	`,
		video.Id,
		video.Channel,
		video.Author,
		video.Title,
		video.Description,
		strings.Join(video.Tags, ","),
		video.ContentType,
		video.Size,
		video.Status,
		video.AssetId,
		video.PlaybackId,
		video.Duration,
		upload,
		video.CreatedAt,
		video.UpdatedAt,
	)
	return err
}

// Delete the video record from the persistence.
func (r *SQLVideoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
	return err
}

func scanVideo(scan func(...any) error) (*entity.Video, error) {
	var (
		video  entity.Video
		tags   string
		upload sql.NullString
	)
	err := scan(
		&video.Id,
		&video.Channel,
		&video.Author,
		&video.Title,
		&video.Description,
		&tags,
		&video.ContentType,
		&video.Size,
		&video.Status,
		&video.AssetId,
		&video.PlaybackId,
		&video.Duration,
		&upload,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tags != "" {
		video.Tags = strings.Split(tags, ",")
	}
	if upload.Valid && upload.String != "" {
		var progress entity.UploadProgress
		if err := json.Unmarshal([]byte(upload.String), &progress); err != nil {
			return nil, err
		}
		video.Upload = &progress
	}
	return &video, nil
}

func marshalUpload(progress *entity.UploadProgress) (sql.NullString, error) {
	if progress == nil {
		return sql.NullString{}, nil
	}
	buf, err := json.Marshal(progress)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(buf), Valid: true}, nil
}

type SQLChannelRepository struct {
	db *sql.DB
}

func NewSQLChannelRepository(db *sql.DB) *SQLChannelRepository {
	return &SQLChannelRepository{db: db}
}

// Get the channel by the channel ID.
func (r *SQLChannelRepository) GetById(ctx context.Context, id string) (*entity.Channel, error) {
	var channel entity.Channel
	err := r.db.QueryRowContext(ctx,
		"SELECT id, owner, name, description, created_at, updated_at FROM channels WHERE id = ?", id).
		Scan(&channel.Id, &channel.Owner, &channel.Name, &channel.Description, &channel.CreatedAt, &channel.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// List channels owned by the given user, newest first.
func (r *SQLChannelRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*entity.Channel, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, owner, name, description, created_at, updated_at FROM channels WHERE owner = ? ORDER BY created_at DESC LIMIT ?",
		owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var channels []*entity.Channel
	for rows.Next() {
		var channel entity.Channel
		if err := rows.Scan(&channel.Id, &channel.Owner, &channel.Name, &channel.Description, &channel.CreatedAt, &channel.UpdatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, &channel)
	}
	return channels, rows.Err()
}

// Save an entity to the persistence.
func (r *SQLChannelRepository) Save(ctx context.Context, channel *entity.Channel) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO channels (id, owner, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			description = VALUES(description),
			updated_at = VALUES(updated_at)
	`,
		channel.Id,
		channel.Owner,
		channel.Name,
		channel.Description,
		channel.CreatedAt,
		channel.UpdatedAt,
	)
	return err
}
