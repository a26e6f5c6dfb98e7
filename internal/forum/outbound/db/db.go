package db

import (
	"context"
	"errors"

	"github.com/dailyvegies/api/internal/forum/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("forum.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) CreatePost(ctx context.Context, in entity.Post) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO forum_posts (id, farmer_id, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.FarmerID, in.Title, in.Content, in.CreatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) GetPostByID(ctx context.Context, id int64) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "GetPostByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, farmer_id, title, content, created_at FROM forum_posts WHERE id = $1`

	var p entity.Post
	err = s.conn.QueryRow(ctx, query, id).Scan(&p.ID, &p.FarmerID, &p.Title, &p.Content, &p.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) GetPosts(ctx context.Context, viewerID int64) (_ []entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "GetPosts")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT p.id, p.farmer_id, a.full_name, p.title, p.content, p.created_at,
			(SELECT count(*) FROM forum_likes l WHERE l.post_id = p.id),
			EXISTS (SELECT 1 FROM forum_likes l WHERE l.post_id = p.id AND l.account_id = $1)
		FROM forum_posts p
		JOIN accounts a ON a.id = p.farmer_id
		ORDER BY p.created_at DESC`

	rows, err := s.conn.Query(ctx, query, viewerID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	posts := make([]entity.Post, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var p entity.Post
		err = rows.Scan(&p.ID, &p.FarmerID, &p.FarmerName, &p.Title, &p.Content, &p.CreatedAt, &p.LikeCount, &p.Liked)
		if err != nil {
			return nil, s.mapError(err)
		}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	if len(ids) == 0 {
		return posts, nil
	}

	comments, err := s.getComments(ctx, ids)
	if err != nil {
		return nil, s.mapError(err)
	}
	for i := range posts {
		posts[i].Comments = comments[posts[i].ID]
	}

	return posts, nil
}

func (s *DB) getComments(ctx context.Context, postIDs []int64) (map[int64][]entity.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.account_id, a.full_name, c.comment, c.created_at
		FROM forum_comments c
		JOIN accounts a ON a.id = c.account_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at ASC`

	rows, err := s.conn.Query(ctx, query, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[int64][]entity.Comment)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments[c.PostID] = append(comments[c.PostID], c)
	}

	return comments, rows.Err()
}

func (s *DB) CreateComment(ctx context.Context, in entity.Comment) (err error) {
	ctx, span := s.startSpan(ctx, "CreateComment")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO forum_comments (id, post_id, account_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.PostID, in.AuthorID, in.Comment, in.CreatedAt)

	err = s.mapError(err)
	return err
}

// ToggleLike deletes the like when it exists, inserts it otherwise. The
// unique (post_id, account_id) index makes a racing double-insert fall out as
// a conflict, which is treated as "already liked".
func (s *DB) ToggleLike(ctx context.Context, postID, accountID, likeID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ToggleLike")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM forum_likes WHERE post_id = $1 AND account_id = $2`, postID, accountID)
	if err != nil {
		err = s.mapError(err)
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.conn.Exec(ctx,
		`INSERT INTO forum_likes (id, post_id, account_id, created_at) VALUES ($1, $2, $3, now())`,
		likeID, postID, accountID,
	)
	if err != nil {
		err = s.mapError(err)
		if errors.Is(err, goerror.ErrConflict) {
			return true, nil
		}
		return false, err
	}

	return true, nil
}
