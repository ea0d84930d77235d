package i18n

import (
	"golang.org/x/text/message/catalog"

	"github.com/liyang960414/erp/pkg/sdk"
)

// Route title keys.
const (
	KeyMenuHome        = "menu.home"
	KeyMenuUserList    = "menu.userList"
	KeyMenuProducts    = "menu.products"
	KeyMenuOrders      = "menu.orders"
	KeyMenuSettings    = "menu.systemSettings"
	KeyMenuPermissions = "menu.permissions"
	KeyMenuRoles       = "menu.roles"
	KeyMenuAuditLogs   = "menu.auditLogs"
	KeyMenuImportTasks = "menu.importTasks"
	KeyMenuLogin       = "menu.login"
	KeyLogoutSuccess   = "auth.logoutSuccess"
	KeyLocaleChanged   = "locale.changed"
)

var messages = map[Locale]map[string]string{
	ZhCN: {
		string(sdk.MsgRequestFailed):  "请求失败",
		string(sdk.MsgBadRequest):     "请求参数错误",
		string(sdk.MsgSessionExpired): "登录已失效，请重新登录",
		string(sdk.MsgNoPermission):   "没有权限访问，请联系管理员",
		string(sdk.MsgNotFound):       "请求的资源不存在",
		string(sdk.MsgServerError):    "服务器错误",
		string(sdk.MsgStatusFailed):   "请求失败 (%d)",
		string(sdk.MsgTimeout):        "请求超时，请稍后重试",
		string(sdk.MsgNetwork):        "网络连接失败，请检查网络",
		string(sdk.MsgRequestConfig):  "请求配置错误",
		string(sdk.MsgLoginSuccess):   "登录成功",
		KeyLogoutSuccess:              "已退出登录",
		KeyLocaleChanged:              "语言已切换为 %s",
		KeyMenuHome:                   "首页",
		KeyMenuUserList:               "用户列表",
		KeyMenuProducts:               "商品管理",
		KeyMenuOrders:                 "订单管理",
		KeyMenuSettings:               "系统设置",
		KeyMenuPermissions:            "权限管理",
		KeyMenuRoles:                  "角色管理",
		KeyMenuAuditLogs:              "审计日志",
		KeyMenuImportTasks:            "导入任务",
		KeyMenuLogin:                  "登录",
	},
	En: {
		string(sdk.MsgRequestFailed):  "Request failed",
		string(sdk.MsgBadRequest):     "Invalid request parameters",
		string(sdk.MsgSessionExpired): "Your session has expired, please log in again",
		string(sdk.MsgNoPermission):   "You do not have permission to access this resource, please contact an administrator",
		string(sdk.MsgNotFound):       "The requested resource does not exist",
		string(sdk.MsgServerError):    "Server error",
		string(sdk.MsgStatusFailed):   "Request failed (%d)",
		string(sdk.MsgTimeout):        "Request timed out, please try again later",
		string(sdk.MsgNetwork):        "Network unreachable, please check your connection",
		string(sdk.MsgRequestConfig):  "Request configuration error",
		string(sdk.MsgLoginSuccess):   "Login successful",
		KeyLogoutSuccess:              "Logged out",
		KeyLocaleChanged:              "Language switched to %s",
		KeyMenuHome:                   "Home",
		KeyMenuUserList:               "Users",
		KeyMenuProducts:               "Products",
		KeyMenuOrders:                 "Orders",
		KeyMenuSettings:               "System Settings",
		KeyMenuPermissions:            "Permissions",
		KeyMenuRoles:                  "Roles",
		KeyMenuAuditLogs:              "Audit Logs",
		KeyMenuImportTasks:            "Import Tasks",
		KeyMenuLogin:                  "Login",
	},
	Vi: {
		string(sdk.MsgSessionExpired): "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại",
		string(sdk.MsgNoPermission):   "Bạn không có quyền truy cập, vui lòng liên hệ quản trị viên",
		string(sdk.MsgNotFound):       "Tài nguyên được yêu cầu không tồn tại",
		string(sdk.MsgServerError):    "Lỗi máy chủ",
		string(sdk.MsgTimeout):        "Yêu cầu đã hết thời gian, vui lòng thử lại sau",
		string(sdk.MsgNetwork):        "Kết nối mạng thất bại, vui lòng kiểm tra mạng",
		string(sdk.MsgLoginSuccess):   "Đăng nhập thành công",
		KeyMenuHome:                   "Trang chủ",
		KeyMenuUserList:               "Danh sách người dùng",
		KeyMenuRoles:                  "Quản lý vai trò",
		KeyMenuAuditLogs:              "Nhật ký kiểm toán",
	},
	ID: {
		string(sdk.MsgSessionExpired): "Sesi Anda telah berakhir, silakan masuk kembali",
		string(sdk.MsgNoPermission):   "Anda tidak memiliki izin akses, silakan hubungi administrator",
		string(sdk.MsgNotFound):       "Sumber daya yang diminta tidak ada",
		string(sdk.MsgServerError):    "Kesalahan server",
		string(sdk.MsgTimeout):        "Permintaan habis waktu, silakan coba lagi nanti",
		string(sdk.MsgNetwork):        "Koneksi jaringan gagal, silakan periksa jaringan Anda",
		string(sdk.MsgLoginSuccess):   "Berhasil masuk",
		KeyMenuHome:                   "Beranda",
		KeyMenuUserList:               "Daftar Pengguna",
		KeyMenuRoles:                  "Manajemen Peran",
		KeyMenuAuditLogs:              "Log Audit",
	},
}

// newCatalog builds the message catalog. Keys missing from a locale use the
// Simplified Chinese text.
func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(Default.Tag()))
	base := messages[Default]
	for _, locale := range Locales() {
		tag := locale.Tag()
		entries := messages[locale]
		for key, fallback := range base {
			msg, ok := entries[key]
			if !ok {
				msg = fallback
			}
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}
