package msgtrans

import "fmt"

// Lang is the active language.
var Lang = "en"

// Messages keyed by ID, with en/ja/fr variants.
var messages = map[string]map[string]string{
	// === Generate ===
	"scanning":      {"en": "Scanning %s", "ja": "%s をスキャン中", "fr": "Analyse de %s"},
	"translations":  {"en": "Translation root: %s", "ja": "翻訳ルート: %s", "fr": "Racine des traductions : %s"},
	"dry_run":       {"en": "DRY RUN: nothing will be written", "ja": "DRY RUN: ファイルは書き込まれません", "fr": "SIMULATION : aucun fichier ne sera écrit"},
	"no_interfaces": {"en": "No message interfaces found", "ja": "メッセージインターフェースが見つかりません", "fr": "Aucune interface de messages trouvée"},
	"written":       {"en": "Wrote %d file(s)", "ja": "%d 件のファイルを書き込み", "fr": "%d fichier(s) écrit(s)"},
	"removed":       {"en": "Removed %d stale generated file(s)", "ja": "古い生成ファイルを %d 件削除", "fr": "%d fichier(s) généré(s) obsolète(s) supprimé(s)"},
	"summary":       {"en": "Interfaces: %d  Types: %d  Warnings: %d  Errors: %d", "ja": "インターフェース: %d  型: %d  警告: %d  エラー: %d", "fr": "Interfaces : %d  Types : %d  Avertissements : %d  Erreurs : %d"},

	// === Report ===
	"class_primary":      {"en": "default messages", "ja": "既定メッセージ", "fr": "messages par défaut"},
	"class_synthetic":    {"en": "synthesized (empty)", "ja": "合成 (空)", "fr": "synthétisé (vide)"},
	"class_translations": {"en": "%d translation(s)", "ja": "翻訳 %d 件", "fr": "%d traduction(s)"},

	// === Check ===
	"check_ok":     {"en": "All translations are consistent", "ja": "すべての翻訳は整合しています", "fr": "Toutes les traductions sont cohérentes"},
	"check_failed": {"en": "Check failed: %d error(s), %d warning(s)", "ja": "チェック失敗: エラー %d 件、警告 %d 件", "fr": "Échec de la vérification : %d erreur(s), %d avertissement(s)"},

	// === Skeleton ===
	"skeleton_written": {"en": "Skeleton written: %s", "ja": "スケルトンを作成: %s", "fr": "Squelette écrit : %s"},
	"skeleton_none":    {"en": "No interface matches %q", "ja": "%q に一致するインターフェースはありません", "fr": "Aucune interface ne correspond à %q"},

	// === Watch ===
	"watching":        {"en": "Watching %d director(ies) for changes (Ctrl+C to stop)", "ja": "%d 個のディレクトリを監視中 (Ctrl+C で停止)", "fr": "Surveillance de %d répertoire(s) (Ctrl+C pour arrêter)"},
	"change_detected": {"en": "Change detected: %s", "ja": "変更を検知: %s", "fr": "Modification détectée : %s"},
	"pass_failed":     {"en": "Generation pass failed: %v", "ja": "生成パス失敗: %v", "fr": "Échec de la passe de génération : %v"},

	// === Update ===
	"update_none":      {"en": "No release found.", "ja": "リリースが見つかりません。", "fr": "Aucune version publiée trouvée."},
	"update_dev":       {"en": "Development build (version %q), cannot compare versions.\nLatest release: v%s", "ja": "開発ビルド (バージョン %q) のため比較できません。\n最新リリース: v%s", "fr": "Version de développement (%q), comparaison impossible.\nDernière version : v%s"},
	"update_current":   {"en": "Already up to date (v%s).", "ja": "最新です (v%s)。", "fr": "Déjà à jour (v%s)."},
	"update_available": {"en": "Update available: v%s → v%s", "ja": "更新があります: v%s → v%s", "fr": "Mise à jour disponible : v%s → v%s"},
	"updated":          {"en": "Updated to v%s", "ja": "v%s に更新しました", "fr": "Mis à jour vers v%s"},
}

// Msg returns a localized message by key.
// Falls back to English if the key or language is missing.
func Msg(key string) string {
	if m, ok := messages[key]; ok {
		if s, ok := m[Lang]; ok {
			return s
		}
		if s, ok := m["en"]; ok {
			return s
		}
	}
	return fmt.Sprintf("[missing: %s]", key)
}
