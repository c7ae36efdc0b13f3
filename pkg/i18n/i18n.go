package i18n

import (
	"reflect"
	"sync"
)

// Language type
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

// Messages holds all translatable strings
type Messages struct {
	// System
	Starting         string
	ConfigLoadFailed string
	ClientReady      string
	ClientInitFailed string

	// API
	StatusCheckFailed string
	APIOnline         string
	APIOffline        string
	ListUsersFailed   string
	UserCount         string

	// Health check
	HealthTitle   string
	HealthResults string
	HealthOverall string
	EnvFileFound  string
	EnvFileAbsent string
}

var (
	currentLang Language = LangEN
	mu          sync.RWMutex
	messages    *Messages
)

// English messages
var messagesEN = Messages{
	Starting:         "Starting SnapTrade client bootstrap...",
	ConfigLoadFailed: "Config load failed: %v",
	ClientReady:      "SnapTrade client ready (client ID: %s, base URL: %s)",
	ClientInitFailed: "SnapTrade client construction failed: %v",

	StatusCheckFailed: "API status check failed: %v",
	APIOnline:         "SnapTrade API online (version %d)",
	APIOffline:        "SnapTrade API reports offline",
	ListUsersFailed:   "Listing users failed: %v",
	UserCount:         "%d registered users",

	HealthTitle:   "SnapTrade Health Check",
	HealthResults: "Results:",
	HealthOverall: "Overall Status: %s",
	EnvFileFound:  "%s loaded",
	EnvFileAbsent: "%s not found, using process environment",
}

// Chinese messages
var messagesZH = Messages{
	Starting:         "正在初始化 SnapTrade 客戶端...",
	ConfigLoadFailed: "載入設定失敗: %v",
	ClientReady:      "SnapTrade 客戶端已就緒 (客戶端 ID: %s, 基礎網址: %s)",
	ClientInitFailed: "建立 SnapTrade 客戶端失敗: %v",

	StatusCheckFailed: "API 狀態檢查失敗: %v",
	APIOnline:         "SnapTrade API 在線 (版本 %d)",
	APIOffline:        "SnapTrade API 回報離線",
	ListUsersFailed:   "列出用戶失敗: %v",
	UserCount:         "已註冊用戶 %d 位",

	HealthTitle:   "SnapTrade 健康檢查",
	HealthResults: "結果:",
	HealthOverall: "整體狀態: %s",
	EnvFileFound:  "已載入 %s",
	EnvFileAbsent: "找不到 %s，使用行程環境變數",
}

func init() {
	messages = &messagesEN
}

// SetLanguage sets the current language
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()

	switch lang {
	case LangZH:
		currentLang = LangZH
		messages = &messagesZH
	default:
		currentLang = LangEN
		messages = &messagesEN
	}
}

// GetLanguage returns the current language
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// M returns the current messages
func M() *Messages {
	mu.RLock()
	defer mu.RUnlock()
	return messages
}

// Get returns specific message by key dynamically using reflection
func Get(key string) string {
	msg := M()
	v := reflect.ValueOf(msg).Elem()
	f := v.FieldByName(key)
	if f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return key
}
