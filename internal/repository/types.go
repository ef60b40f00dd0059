package repository

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page       int
	PageSize   int
	Search     string
	AuthorID   uint
	CategoryID uint
	TagID      uint
	OrderBy    string
}

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	Page         int
	PageSize     int
	PostID       uint
	OnlyApproved bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	IsActive *bool
}
