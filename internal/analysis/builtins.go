package analysis

import "strings"

// Builtin ABL names are never flagged by the unknown-symbol checks. The
// tables cover the language's system handles and the function vocabulary
// seen in legacy code; lookups are case-insensitive via uppercased keys.

var builtinVariables = map[string]struct{}{}

var builtinFunctions = map[string]struct{}{}

func init() {
	vars := []string{
		"TODAY", "NOW", "TIME", "TRUE", "FALSE", "YES", "NO",
		"SELF", "THIS-OBJECT", "THIS-PROCEDURE", "TARGET-PROCEDURE", "SOURCE-PROCEDURE",
		"SESSION", "CURRENT-WINDOW", "DEFAULT-WINDOW", "ACTIVE-WINDOW", "FOCUS",
		"CURRENT-LANGUAGE", "ERROR-STATUS", "FILE-INFO", "LAST-EVENT",
		"CLIPBOARD", "COLOR-TABLE", "FONT-TABLE", "RCODE-INFO", "COMPILER",
		"DEBUGGER", "LOG-MANAGER", "SECURITY-POLICY", "TRANSACTION", "RETRY",
		"PROGRESS", "PROVERSION", "OPSYS", "PROPATH", "RETURN-VALUE",
		"CURRENT-CHANGED", "AMBIGUOUS", "AVAILABLE", "LOCKED", "NEW",
		"UNKNOWN", "ANYWHERE",
	}
	fns := []string{
		"ABSOLUTE", "ABS", "ACCUM", "ADD-INTERVAL", "ALIAS", "ASC", "AVAILABLE",
		"AMBIGUOUS", "BASE64-DECODE", "BASE64-ENCODE", "BEGINS", "BUFFER-GROUP-ID",
		"BUFFER-GROUP-NAME", "BUFFER-PARTITION-ID", "BUFFER-TENANT-ID",
		"BUFFER-TENANT-NAME", "CAN-DO", "CAN-FIND", "CAN-QUERY", "CAN-SET", "CAPS",
		"CAST", "CHR", "CODEPAGE-CONVERT", "COMPARE", "CONNECTED", "COUNT-OF",
		"CURRENT-CHANGED", "CURRENT-LANGUAGE", "CURRENT-RESULT-ROW", "CURRENT-VALUE",
		"DATA-SOURCE-MODIFIED", "DATE", "DATETIME", "DATETIME-TZ", "DAY", "DBCODEPAGE",
		"DBCOLLATION", "DBNAME", "DBPARAM", "DBRESTRICTIONS", "DBTASKID", "DBTYPE",
		"DBVERSION", "DECIMAL", "DEC", "DECRYPT", "DYNAMIC-CAST", "DYNAMIC-CURRENT-VALUE",
		"DYNAMIC-FUNCTION", "DYNAMIC-INVOKE", "DYNAMIC-NEW", "DYNAMIC-NEXT-VALUE",
		"ENCODE", "ENCRYPT", "ENTERED", "ENTRY", "ERROR", "ETIME", "EXP", "EXTENT",
		"FILL", "FIRST", "FIRST-OF", "FRAME-COL", "FRAME-DB", "FRAME-DOWN",
		"FRAME-FIELD", "FRAME-FILE", "FRAME-INDEX", "FRAME-LINE", "FRAME-NAME",
		"FRAME-ROW", "FRAME-VALUE", "GENERATE-PBE-KEY", "GENERATE-PBE-SALT",
		"GENERATE-RANDOM-KEY", "GENERATE-UUID", "GET-BITS", "GET-BYTE", "GET-BYTES",
		"GET-BYTE-ORDER", "GET-CODEPAGE", "GET-CODEPAGES", "GET-COLLATION",
		"GET-COLLATIONS", "GET-DB-CLIENT", "GET-DOUBLE", "GET-EFFECTIVE-TENANT-ID",
		"GET-EFFECTIVE-TENANT-NAME", "GET-FLOAT", "GET-INT64", "GET-LONG",
		"GET-POINTER-VALUE", "GET-SHORT", "GET-SIZE", "GET-STRING", "GET-UNSIGNED-LONG",
		"GET-UNSIGNED-SHORT", "GUID", "HANDLE", "HEX-DECODE", "HEX-ENCODE", "IF",
		"INDEX", "INT64", "INTEGER", "INT", "INTERVAL", "IS-ATTR-SPACE", "IS-CODEPAGE-FIXED",
		"IS-COLUMN-CODEPAGE", "IS-DB-MULTI-TENANT", "IS-LEAD-BYTE", "ISO-DATE",
		"KBLABEL", "KEYCODE", "KEYFUNCTION", "KEYLABEL", "KEYWORD", "KEYWORD-ALL",
		"LAST", "LAST-OF", "LASTKEY", "LC", "LDBNAME", "LEFT-TRIM", "LENGTH", "LIBRARY",
		"LINE-COUNTER", "LIST-EVENTS", "LIST-QUERY-ATTRS", "LIST-SET-ATTRS",
		"LIST-WIDGETS", "LOCKED", "LOG", "LOGICAL", "LOOKUP", "MAXIMUM", "MAX",
		"MD5-DIGEST", "MEMBER", "MESSAGE-DIGEST", "MESSAGE-LINES", "MINIMUM", "MIN",
		"MODULO", "MONTH", "MTIME", "NEW", "NEXT-VALUE", "NORMALIZE", "NOT", "NUM-ALIASES",
		"NUM-DBS", "NUM-ENTRIES", "NUM-RESULTS", "OS-DRIVES", "OS-ERROR", "OS-GETENV",
		"PAGE-NUMBER", "PAGE-SIZE", "PDBNAME", "PROC-HANDLE", "PROC-STATUS",
		"PROGRAM-NAME", "PROGRESS", "PROMSGS", "PROPATH", "PROVERSION", "QUERY-OFF-END",
		"QUOTER", "R-INDEX", "RANDOM", "RAW", "RECID", "RECORD-LENGTH", "REJECTED",
		"REPLACE", "RETRY", "RETURN-VALUE", "RGB-VALUE", "RIGHT-TRIM", "ROUND", "ROWID",
		"SCREEN-LINES", "SDBNAME", "SEARCH", "SEEK", "SET-DB-CLIENT",
		"SET-EFFECTIVE-TENANT", "SETUSERID", "SHA1-DIGEST", "SQRT", "SSL-SERVER-NAME",
		"STRING", "SUBSTITUTE", "SUBSTRING", "SUBSTR", "SUPER", "TENANT-ID",
		"TENANT-NAME", "TENANT-NAME-TO-ID", "TERMINAL", "TIME", "TIMEZONE", "TODAY",
		"TO-ROWID", "TRANSACTION", "TRIM", "TRUNCATE", "TYPE-OF", "UNBUFFERED",
		"USERID", "USER", "VALID-EVENT", "VALID-HANDLE", "VALID-OBJECT", "VALUE",
		"WEEKDAY", "WIDGET-HANDLE", "YEAR",
	}
	for _, v := range vars {
		builtinVariables[v] = struct{}{}
	}
	for _, f := range fns {
		builtinFunctions[f] = struct{}{}
	}
}

// IsBuiltinVariableName reports whether the uppercased name is a builtin
// system handle or constant.
func IsBuiltinVariableName(nameUpper string) bool {
	_, ok := builtinVariables[strings.ToUpper(nameUpper)]
	return ok
}

// IsBuiltinFunctionName reports whether the uppercased name is a builtin
// function.
func IsBuiltinFunctionName(nameUpper string) bool {
	_, ok := builtinFunctions[strings.ToUpper(nameUpper)]
	return ok
}
