package code_analyzer

const javascriptQuery = `
(import_statement) @import
(function_declaration name: (_) @function)
(class_declaration name: (_) @class)
(variable_declarator name: (_) @component value: (arrow_function))
`

// TypeScript and TSX share the JavaScript node names and add interfaces and type aliases.
const typescriptQuery = javascriptQuery + `
(interface_declaration name: (_) @interface)
(type_alias_declaration name: (_) @type)
`
