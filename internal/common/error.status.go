package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusAccepted  = 202 // Yêu cầu được chấp nhận
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest         = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized       = 401 // Chưa xác thực
	StatusForbidden          = 403 // Không có quyền truy cập
	StatusNotFound           = 404 // Không tìm thấy tài nguyên
	StatusConflict           = 409 // Xung đột dữ liệu
	StatusGone               = 410 // Tài nguyên không còn tồn tại
	StatusPreconditionFailed = 412 // Điều kiện tiên quyết không thỏa mãn
	StatusTooManyRequests    = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: ORD_001)
	Category    string // Phân loại lỗi (ví dụ: Order)
	SubCategory string // Phân loại con (ví dụ: Catalog)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "Lỗi xác thực dữ liệu chung",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusiness = ErrorCode{
		Code:        "BIZ",
		Category:    "Business",
		SubCategory: "General",
		Description: "Lỗi logic nghiệp vụ chung",
	}

	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Lỗi trạng thái nghiệp vụ",
	}

	ErrCodeBusinessUsage = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Usage",
		Description: "Lỗi hạn mức sử dụng",
	}

	// Order Errors (ORD_xxx)
	ErrCodeOrderCatalog = ErrorCode{
		Code:        "ORD_001",
		Category:    "Order",
		SubCategory: "Catalog",
		Description: "Lỗi tra cứu sản phẩm trong danh mục",
	}

	ErrCodeOrderSession = ErrorCode{
		Code:        "ORD_002",
		Category:    "Order",
		SubCategory: "Session",
		Description: "Lỗi phiên đặt hàng",
	}

	ErrCodeOrderState = ErrorCode{
		Code:        "ORD_003",
		Category:    "Order",
		SubCategory: "State",
		Description: "Lỗi trạng thái đơn hàng",
	}

	ErrCodeOrderConflict = ErrorCode{
		Code:        "ORD_004",
		Category:    "Order",
		SubCategory: "Conflict",
		Description: "Xung đột ghi đồng thời trên đơn hàng",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}

	return false
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)

	// Business Errors
	ErrBusinessInactive = NewError(ErrCodeBusinessState, "Doanh nghiệp không hoạt động hoặc không tồn tại", StatusForbidden, nil)
	ErrUsageExceeded    = NewError(ErrCodeBusinessUsage, "Đã vượt hạn mức sử dụng của gói dịch vụ", StatusTooManyRequests, nil)

	// Order Catalog Errors
	ErrVariantNotFound = NewError(ErrCodeOrderCatalog, "Không tìm thấy sản phẩm hoặc biến thể trong danh mục", StatusNotFound, nil)
	ErrOutOfStock      = NewError(ErrCodeOrderCatalog, "Sản phẩm đã hết hàng", StatusConflict, nil)
	ErrInvalidPrice    = NewError(ErrCodeOrderCatalog, "Giá sản phẩm không hợp lệ", StatusConflict, nil)

	// Order Session Errors
	ErrNoActiveSession = NewError(ErrCodeOrderSession, "Không có phiên đặt hàng đang hoạt động", StatusNotFound, nil)
	ErrItemNotFound    = NewError(ErrCodeOrderSession, "Sản phẩm không có trong đơn hàng", StatusNotFound, nil)

	// Order State Errors
	ErrEmptyOrder    = NewError(ErrCodeOrderState, "Đơn hàng chưa có sản phẩm nào", StatusPreconditionFailed, nil)
	ErrOrderTerminal = NewError(ErrCodeOrderState, "Đơn hàng đã kết thúc, không thể thay đổi", StatusGone, nil)
	ErrOrderConflict = NewError(ErrCodeOrderConflict, "Đơn hàng đang được cập nhật bởi thao tác khác", StatusConflict, nil)
)

// NewIncompleteInfoError tạo lỗi thiếu thông tin khách hàng khi xác nhận đơn,
// kèm danh sách các trường còn thiếu trong Details.
func NewIncompleteInfoError(missingFields []string) error {
	return NewError(
		ErrCodeOrderState,
		"Thiếu thông tin khách hàng để xác nhận đơn hàng",
		StatusPreconditionFailed,
		map[string]any{"missingFields": missingFields},
	)
}

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi nghiệp vụ đã được chuẩn hóa thì giữ nguyên, không convert
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Kiểm tra các loại lỗi MongoDB cụ thể
	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		// Connection Errors
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return NewError(ErrCodeDatabaseConnection, "Lỗi kết nối MongoDB", StatusServiceUnavailable, err)
		// Query Errors
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn MongoDB", StatusInternalServerError, err)
		// Write Errors
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return NewError(ErrCodeDatabaseQuery, "Lỗi ghi dữ liệu MongoDB", StatusInternalServerError, err)
		// System Errors
		case mongoErr.Code >= 500:
			return NewError(ErrCodeDatabase, "Lỗi hệ thống MongoDB", StatusInternalServerError, err)
		}
	}

	// Kiểm tra các lỗi MongoDB khác
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrConnection
	}
	if mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusServiceUnavailable, err)
	}

	// Nếu không tìm thấy lỗi cụ thể, trả về lỗi hệ thống chung
	return NewError(ErrCodeDatabase, "Lỗi tương tác với cơ sở dữ liệu", StatusInternalServerError, err)
}
