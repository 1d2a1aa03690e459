// Package api はHTTPハンドラー間で共有されるリクエスト・レスポンスのスキーマを定義します。
package api

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetectionResponse は認識結果の1件分です。
type DetectionResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DishRequest は料理の登録・更新リクエストです。
// 更新時は Code は無視され、パスパラメータのコードが使われます。
type DishRequest struct {
	Code           string `json:"code"`
	Description    string `json:"description" binding:"required"`
	ImageReference string `json:"image_reference"`
}

// DishResponse は料理1件のレスポンスです。内部のサロゲートIDは公開しません。
type DishResponse struct {
	Code           string `json:"code"`
	Description    string `json:"description"`
	ImageReference string `json:"image_reference,omitempty"`
}

// MessageResponse は本文を持たない操作の結果メッセージです。
type MessageResponse struct {
	Message string `json:"message"`
}
