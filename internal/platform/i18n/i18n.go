// Package i18n holds the console's user-facing message catalog.
package i18n

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The key doubles as the English text.
const (
	MsgUserNotFound      = "User not found"
	MsgUserExists        = "Username or email already exists"
	MsgUserConflict      = "Username or email conflicts with another user"
	MsgInvalidRequest    = "Invalid request parameters"
	MsgUserCreated       = "User created"
	MsgUserUpdated       = "User updated"
	MsgUserDeleted       = "User deleted"
	MsgUsersDeleted      = "Deleted %d users"
	MsgUserStatusUpdated = "User status updated"
	MsgMaintenance       = "System under maintenance"
	MsgSettingsSaved     = "Settings saved"
	MsgSettingsReset     = "Settings reset"
	MsgInternalError     = "Internal server error"
)

var zhHans = map[string]string{
	MsgUserNotFound:      "用户不存在",
	MsgUserExists:        "用户名或邮箱已存在",
	MsgUserConflict:      "用户名或邮箱与其他用户冲突",
	MsgInvalidRequest:    "请求参数无效",
	MsgUserCreated:       "用户创建成功",
	MsgUserUpdated:       "用户信息更新成功",
	MsgUserDeleted:       "用户删除成功",
	MsgUsersDeleted:      "成功删除 %d 个用户",
	MsgUserStatusUpdated: "用户状态更新成功",
	MsgMaintenance:       "系统维护中",
	MsgSettingsSaved:     "设置已保存",
	MsgSettingsReset:     "设置已重置",
	MsgInternalError:     "服务器内部错误",
}

// Catalog resolves printers for negotiated languages.
type Catalog struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// New builds the catalog with defaultLang preferred when negotiation fails.
// Supported languages are zh-Hans and en.
func New(defaultLang string) (*Catalog, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse default language %q: %w", defaultLang, err)
	}
	supported := []language.Tag{language.SimplifiedChinese, language.English}
	enBase, _ := language.English.Base()
	if base, _ := def.Base(); base == enBase {
		supported = []language.Tag{language.English, language.SimplifiedChinese}
	}

	builder := catalog.NewBuilder(catalog.Fallback(supported[0]))
	for key, text := range zhHans {
		if err := builder.SetString(language.SimplifiedChinese, key, text); err != nil {
			return nil, fmt.Errorf("i18n: zh-Hans %q: %w", key, err)
		}
		if err := builder.SetString(language.English, key, key); err != nil {
			return nil, fmt.Errorf("i18n: en %q: %w", key, err)
		}
	}
	return &Catalog{builder: builder, supported: supported, matcher: language.NewMatcher(supported)}, nil
}

// Default returns the printer for the preferred language.
func (c *Catalog) Default() *message.Printer {
	return message.NewPrinter(c.supported[0], message.Catalog(c.builder))
}

// PrinterFor negotiates an Accept-Language header value. Unsupported or
// malformed values get the default language.
func (c *Catalog) PrinterFor(acceptLanguage string) *message.Printer {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.supported) {
		idx = 0
	}
	return message.NewPrinter(c.supported[idx], message.Catalog(c.builder))
}

// Printer negotiates the request's Accept-Language header.
func (c *Catalog) Printer(r *http.Request) *message.Printer {
	if c == nil {
		return message.NewPrinter(language.English)
	}
	return c.PrinterFor(r.Header.Get("Accept-Language"))
}
